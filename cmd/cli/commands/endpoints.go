package commands

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

// EndpointsCmd creates the endpoints command
func EndpointsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "Print the webhook URL used for each operation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(app.Endpoints))
			for name := range app.Endpoints {
				names = append(names, name)
			}
			sort.Strings(names)

			fmt.Println()
			for _, name := range names {
				fmt.Printf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", name)), app.Endpoints[name])
			}
			fmt.Println()
			return nil
		},
	}
}
