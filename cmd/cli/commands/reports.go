package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/shifttrack/pkg/core/model"
	"github.com/jakechorley/shifttrack/pkg/core/services"
	"github.com/jakechorley/shifttrack/pkg/export"
)

// reportFlags are the filters shared by every reports subcommand
type reportFlags struct {
	search string
	status string
	from   string
	to     string
}

func (f *reportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.search, "search", "s", "", "Only employees whose name contains this text")
	cmd.Flags().StringVar(&f.status, "status", string(model.StatusAll), "all, active or completed")
	cmd.Flags().StringVar(&f.from, "from", "", "First day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.to, "to", "", "Last day to include (YYYY-MM-DD)")
}

func (f *reportFlags) filter(loc *time.Location) (model.ReportFilter, error) {
	filter := model.ReportFilter{Search: f.search, Status: model.StatusFilter(f.status)}
	if !filter.Status.IsValid() {
		return filter, fmt.Errorf("status must be all, active or completed, got: %s", f.status)
	}

	var err error
	if filter.From, err = parseDay(f.from, loc); err != nil {
		return filter, fmt.Errorf("invalid --from: %w", err)
	}
	if filter.To, err = parseDay(f.to, loc); err != nil {
		return filter, fmt.Errorf("invalid --to: %w", err)
	}
	return filter, nil
}

func parseDay(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.ParseInLocation("2006-01-02", s, loc)
}

// loadReport fetches the history and applies the filters. Only
// administrators may read it.
func loadReport(app *AppContext, flags *reportFlags) ([]model.Shift, error) {
	if _, err := services.RequireAdmin(app.Session); err != nil {
		return nil, err
	}
	loc := app.Display.Location()
	filter, err := flags.filter(loc)
	if err != nil {
		return nil, err
	}

	shifts := services.FetchReports(app.Ctx, app.Client, app.Session, loc, app.Metrics, app.Logger)
	filtered := services.FilterShifts(shifts, filter, loc)

	app.Logger.Debug("Report loaded", zap.Int("total", len(shifts)), zap.Int("matching", len(filtered)))
	return filtered, nil
}

// ReportsCmd creates the reports command group
func ReportsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Shift history for administrators",
	}
	cmd.AddCommand(reportsListCmd(app), reportsExportCmd(app), reportsPublishCmd(app))
	return cmd
}

func reportsListCmd(app *AppContext) *cobra.Command {
	var flags reportFlags
	var mapLang string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shifts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shifts, err := loadReport(app, &flags)
			if err != nil {
				return err
			}
			if len(shifts) == 0 {
				fmt.Println("\nNo shifts match.")
				return nil
			}

			fmt.Printf("\nShift history (%d)\n\n", len(shifts))
			fmt.Println(shiftTable(shifts))

			if mapLang != "" {
				fmt.Println()
				for _, s := range shifts {
					if !s.HasStartLocation() && !s.HasEndLocation() {
						continue
					}
					fmt.Printf("%s %s\n", labelStyle.Render(s.UserName), s.Date)
					if s.HasStartLocation() {
						fmt.Printf("  in:  %s\n", export.EmbedMapURL(s.Latitude, s.Longitude, mapLang))
					}
					if s.HasEndLocation() {
						fmt.Printf("  out: %s\n", export.EmbedMapURL(s.LatitudeEnd, s.LongitudeEnd, mapLang))
					}
				}
			}
			fmt.Println()
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&mapLang, "maps", "", "Also print embeddable map links labelled in this language")
	return cmd
}

func reportsExportCmd(app *AppContext) *cobra.Command {
	var flags reportFlags
	var format, output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the filtered shifts to a CSV or XLSX file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := export.Format(format)
			if !f.IsValid() {
				return fmt.Errorf("format must be csv or xlsx, got: %s", format)
			}

			shifts, err := loadReport(app, &flags)
			if err != nil {
				return err
			}

			if output == "" {
				output = export.Filename(time.Now().UTC(), f)
			}
			file, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}

			if err := services.ExportReport(file, f, shifts, app.Logger); err != nil {
				file.Close()
				os.Remove(output)
				return err
			}
			if err := file.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}

			fmt.Printf("\n%s Exported %d shifts to %s\n\n", successStyle.Render("✓"), len(shifts), output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", string(export.FormatCSV), "csv or xlsx")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output path (default Report_ShiftTrack_<date>.<format>)")
	return cmd
}

func reportsPublishCmd(app *AppContext) *cobra.Command {
	var flags reportFlags
	var reauth bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write the filtered shifts to a new tab of the report spreadsheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			shifts, err := loadReport(app, &flags)
			if err != nil {
				return err
			}

			if reauth {
				if err := ForgetSheetsToken(app); err != nil {
					return err
				}
			}

			publisher, err := app.Publisher()
			if err != nil {
				return err
			}

			title, err := services.PublishReport(publisher, app.Cfg.ReportSheetID, shifts, time.Now().In(app.Display.Location()), app.Logger)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s Published %d shifts to tab %q\n", successStyle.Render("✓"), len(shifts), title)
			fmt.Printf("https://docs.google.com/spreadsheets/d/%s\n\n", app.Cfg.ReportSheetID)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&reauth, "reauth", false, "Forget the stored Google token and sign in again")
	return cmd
}
