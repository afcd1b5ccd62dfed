package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shifttrack/pkg/core/services"
)

const defaultScheduleCount = 5

// ScheduleCmd creates the schedule command
func ScheduleCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule [count]",
		Short: "Show upcoming shifts from the configured shiftSchedule",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := defaultScheduleCount
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n < 1 {
					return fmt.Errorf("count must be a positive integer, got: %s", args[0])
				}
				count = n
			}

			loc := app.Display.Location()
			now := time.Now().In(loc)
			startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

			rule, err := app.Cfg.ScheduleRule(startOfDay)
			if err != nil {
				return err
			}
			upcoming, err := services.NextScheduledShifts(rule, now, count)
			if err != nil {
				return err
			}

			fmt.Printf("\nUpcoming shifts (%s)\n\n", app.Cfg.ShiftSchedule)
			for i, t := range upcoming {
				fmt.Printf("  %2d. %s %s\n", i+1, app.Display.LongDate(t), app.Display.Clock(t))
			}
			fmt.Println()
			return nil
		},
	}
}
