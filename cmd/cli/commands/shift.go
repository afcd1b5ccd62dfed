package commands

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jakechorley/shifttrack/pkg/core/duration"
	"github.com/jakechorley/shifttrack/pkg/core/services"
	"github.com/jakechorley/shifttrack/pkg/export"
)

// CheckInCmd creates the checkIn command
func CheckInCmd(app *AppContext) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "checkIn",
		Short: "Start a shift now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			marker, err := services.StartShift(app.Ctx, app.Client, app.Session, app.Locator, app.Display, app.Logger,
				services.ShiftRequest{Comment: comment, LocateTimeout: app.Cfg.Geolocation.Timeout})
			if err != nil {
				return err
			}

			fmt.Printf("\n%s Shift started at %s on %s (%s)\n\n",
				successStyle.Render("✓"), marker.DisplayTime, marker.DisplayDate, app.Display.Location())
			return nil
		},
	}

	cmd.Flags().StringVarP(&comment, "comment", "c", "", "Check-in comment")
	return cmd
}

// CheckOutCmd creates the checkOut command
func CheckOutCmd(app *AppContext) *cobra.Command {
	var comment string

	cmd := &cobra.Command{
		Use:   "checkOut",
		Short: "End the shift in progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := services.EndShift(app.Ctx, app.Client, app.Session, app.Locator, app.Display, app.Logger,
				services.ShiftRequest{Comment: comment, LocateTimeout: app.Cfg.Geolocation.Timeout})
			if err != nil {
				return err
			}

			fmt.Printf("\n%s Shift completed\n\n", successStyle.Render("✓"))
			printField("Date", summary.Date)
			printField("Start", summary.Start.DisplayTime)
			printField("End", summary.EndTime)
			printField("Duration", summary.Duration.Formatted)
			if summary.Location != nil {
				printField("Map", export.PointLink(&summary.Location.Lat, &summary.Location.Lng))
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVarP(&comment, "comment", "c", "", "Check-out comment")
	return cmd
}

// StatusCmd creates the status command
func StatusCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show who is signed in and whether a shift is running",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()

			fmt.Println()
			printField("Today", app.Display.LongDate(now))
			printField("Time", app.Display.Clock(now))

			user := app.Session.User()
			if user == nil {
				printField("User", "not signed in")
				fmt.Println()
				return nil
			}
			printField("User", fmt.Sprintf("%s <%s> (%s)", user.Name, user.Email, user.Role))

			marker := services.ActiveSession(app.Session)
			if marker == nil {
				printField("Shift", "none in progress")
				fmt.Println()
				return nil
			}

			elapsed := duration.Between(marker.ISO, now)
			printField("Shift", activeStyle.Render(fmt.Sprintf("started %s", humanize.Time(marker.ISO))))
			printField("Started", marker.DisplayDate+" "+marker.DisplayTime)
			printField("Elapsed", elapsed.Formatted)
			fmt.Println()
			return nil
		},
	}
}
