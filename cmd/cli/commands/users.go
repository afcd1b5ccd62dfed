package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jakechorley/shifttrack/pkg/core/model"
	"github.com/jakechorley/shifttrack/pkg/core/normalize"
	"github.com/jakechorley/shifttrack/pkg/core/services"
)

// UsersCmd creates the users command group
func UsersCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts (administrators only)",
	}
	cmd.AddCommand(usersListCmd(app), usersDeleteCmd(app), usersEditCmd(app))
	return cmd
}

func usersListCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts in your subaccount",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := services.RequireAdmin(app.Session); err != nil {
				return err
			}
			users := services.FetchUsers(app.Ctx, app.Client, app.Session, app.Metrics, app.Logger)
			if len(users) == 0 {
				fmt.Println("\nNo users found.")
				return nil
			}
			fmt.Printf("\nUsers (%d)\n\n", len(users))
			fmt.Println(userTable(users, normalize.IsPlaceholderEmail))
			fmt.Println()
			return nil
		},
	}
}

// lookupUser resolves an id or email against the current user list
func lookupUser(app *AppContext, key string) (*model.User, error) {
	users := services.FetchUsers(app.Ctx, app.Client, app.Session, app.Metrics, app.Logger)
	user, ok := services.FindUser(users, key)
	if !ok {
		return nil, fmt.Errorf("no user with id or email %q", key)
	}
	return user, nil
}

// userLabel names an account for messages, leaving out placeholder emails
func userLabel(u model.User) string {
	if email := services.RealEmail(u); email != "" {
		return fmt.Sprintf("%s <%s>", u.Name, email)
	}
	return fmt.Sprintf("%s (id %s)", u.Name, u.ID)
}

func usersDeleteCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|email>",
		Short: "Delete an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := services.RequireAdmin(app.Session); err != nil {
				return err
			}
			target, err := lookupUser(app, args[0])
			if err != nil {
				return err
			}

			if !services.DeleteUser(app.Ctx, app.Client, app.Session, app.Logger, *target) {
				return fmt.Errorf("the server did not accept deleting %s", userLabel(*target))
			}
			fmt.Printf("\n%s Deleted %s\n\n", successStyle.Render("✓"), userLabel(*target))
			return nil
		},
	}
}

func usersEditCmd(app *AppContext) *cobra.Command {
	var changes model.UserChanges

	cmd := &cobra.Command{
		Use:   "edit <id|email>",
		Short: "Change the name, email or role of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := services.RequireAdmin(app.Session); err != nil {
				return err
			}
			if changes == (model.UserChanges{}) {
				return fmt.Errorf("nothing to change: pass --name, --email or --role")
			}
			target, err := lookupUser(app, args[0])
			if err != nil {
				return err
			}

			ok, err := services.UpdateUser(app.Ctx, app.Client, app.Session, app.Logger, *target, changes)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("the server did not accept the changes to %s", userLabel(*target))
			}
			fmt.Printf("\n%s Updated %s\n\n", successStyle.Render("✓"), userLabel(*target))
			return nil
		},
	}

	cmd.Flags().StringVar(&changes.Name, "name", "", "New name")
	cmd.Flags().StringVar(&changes.Email, "email", "", "New email")
	cmd.Flags().StringVar(&changes.Role, "role", "", "New role")
	return cmd
}
