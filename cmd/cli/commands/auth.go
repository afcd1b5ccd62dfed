package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tidwall/jsonc"
	"go.uber.org/zap"

	"github.com/jakechorley/shifttrack/pkg/core/model"
	"github.com/jakechorley/shifttrack/pkg/core/services"
)

// LoginCmd creates the login command
func LoginCmd(app *AppContext) *cobra.Command {
	var email, password, subaccount string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the account on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if subaccount == "" {
				subaccount = app.Cfg.SubaccountID
			}
			if password == "" {
				var err error
				if password, err = promptLine("Password: "); err != nil {
					return err
				}
			}

			app.Logger.Debug("login command", zap.String("email", email))

			user, err := services.Login(app.Ctx, app.Client, app.Session, app.Logger, model.Credentials{
				Email:        email,
				Password:     password,
				SubaccountID: subaccount,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\n%s Signed in as %s (%s)\n", successStyle.Render("✓"), user.Name, user.Role)
			if user.SubaccountID != "" {
				fmt.Printf("Subaccount: %s\n", user.SubaccountID)
			}
			fmt.Println()
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	cmd.Flags().StringVar(&subaccount, "subaccount", "", "Subaccount id (defaults to subaccountID from config)")
	cmd.MarkFlagRequired("email")

	return cmd
}

// LogoutCmd creates the logout command
func LogoutCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the signed-in account and any open shift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.Logout(app.Ctx, app.Session, app.Logger); err != nil {
				return err
			}
			fmt.Printf("\n%s Signed out\n\n", successStyle.Render("✓"))
			return nil
		},
	}
}

// RegisterCmd creates the register command
func RegisterCmd(app *AppContext) *cobra.Command {
	var input model.NewUserInput
	var file string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		Long: `Create a new account from flags or from a JSON file (comments allowed):

  {
    // new starter
    "name": "Luis", "email": "luis@corp.com", "password": "...", "role": "Analyst",
  }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				fromFile, err := readUserFile(file)
				if err != nil {
					return err
				}
				input = fromFile
			}

			app.Logger.Debug("register command", zap.String("email", input.Email))

			user, err := services.Register(app.Ctx, app.Client, app.Session, app.Logger, input)
			if err != nil {
				return err
			}

			fmt.Printf("\n%s Registered %s <%s> as %s\n\n", successStyle.Render("✓"), user.Name, user.Email, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&input.Email, "email", "", "Email")
	cmd.Flags().StringVar(&input.Password, "password", "", "Initial password")
	cmd.Flags().StringVar(&input.Role, "role", "", "Role (Analyst, Supervisor, Manager, Admin)")
	cmd.Flags().StringVar(&input.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the account from a JSON file")

	return cmd
}

// readUserFile parses a JSON-with-comments account definition
func readUserFile(path string) (model.NewUserInput, error) {
	var input model.NewUserInput
	data, err := os.ReadFile(path)
	if err != nil {
		return input, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(jsonc.ToJSON(data), &input); err != nil {
		return input, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return input, nil
}

// ProfileCmd creates the profile command
func ProfileCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "profile [email]",
		Short: "Show the stored profile of an account (defaults to yours)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var email string
			if len(args) == 1 {
				email = args[0]
			} else {
				user, err := app.currentUser()
				if err != nil {
					return err
				}
				email = user.Email
			}

			profile := services.FetchProfile(app.Ctx, app.Client, app.Session, app.Logger, email)

			fmt.Println()
			printField("Email", profile.Email)
			printField("Name", profile.Name)
			printField("Role", profile.Role)
			printField("Phone", profile.Phone)
			printField("Subaccount", profile.SubaccountID)
			printField("Avatar", profile.Avatar)
			fmt.Println()
			return nil
		},
	}
}

func printField(label, value string) {
	if value == "" {
		value = "-"
	}
	fmt.Printf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-11s", label+":")), value)
}

func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
