package commands

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// InteractiveCmd creates the interactive command
func InteractiveCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Run several commands in one session",
		Long: `Start a prompt where commands run against the same configuration and
session without restarting. Type 'help' for the command list and 'exit' or
'quit' to leave.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := cmd.Root()

			fmt.Println("\nShiftTrack interactive session")
			fmt.Println("Type 'help' for available commands, 'exit' or 'quit' to leave")

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					break
				}

				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				parts, err := parseCommandLine(line)
				if err != nil {
					fmt.Printf("%s %v\n\n", errorStyle.Render("Error parsing command:"), err)
					continue
				}
				if len(parts) == 0 {
					continue
				}

				switch parts[0] {
				case "exit", "quit":
					fmt.Println("Goodbye!")
					return nil
				case "help":
					printInteractiveHelp(root)
					continue
				case "interactive":
					fmt.Println("Already in an interactive session")
					continue
				}

				if err := runLine(root, parts); err != nil {
					fmt.Printf("%s %v\n\n", errorStyle.Render("Error:"), err)
				}
			}

			if err := scanner.Err(); err != nil {
				return fmt.Errorf("error reading input: %w", err)
			}
			return nil
		},
	}
}

// runLine finds the (possibly nested) command for parts and runs its RunE
// directly so the root's PersistentPreRunE does not reinitialise the app
func runLine(root *cobra.Command, parts []string) error {
	target, rest, err := root.Find(parts)
	if err != nil || target == root {
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", parts[0])
	}
	if target.RunE == nil && target.Run == nil {
		printInteractiveHelp(target)
		return nil
	}

	resetFlags(target)
	if err := target.ParseFlags(rest); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}
	rest = target.Flags().Args()

	if target.Args != nil {
		if err := target.Args(target, rest); err != nil {
			return err
		}
	}
	if err := target.ValidateRequiredFlags(); err != nil {
		return err
	}

	if target.RunE != nil {
		return target.RunE(target, rest)
	}
	target.Run(target, rest)
	return nil
}

func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		flag.Changed = false
		flag.Value.Set(flag.DefValue)
	})
}

func printInteractiveHelp(parent *cobra.Command) {
	fmt.Println("\nAvailable commands:")

	var lines []string
	var walk func(cmd *cobra.Command, prefix string)
	walk = func(cmd *cobra.Command, prefix string) {
		for _, sub := range cmd.Commands() {
			name := sub.Name()
			if name == "interactive" || name == "completion" || name == "help" {
				continue
			}
			use := strings.TrimSpace(prefix + " " + sub.Use)
			if sub.HasSubCommands() {
				walk(sub, prefix+" "+name)
				continue
			}
			lines = append(lines, fmt.Sprintf("  %-34s %s", use, sub.Short))
		}
	}
	walk(parent, parentPrefix(parent))
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Println(l)
	}

	fmt.Println("\n  help                               Show this help message")
	fmt.Println("  exit, quit                         Exit the interactive session")
	fmt.Println()
}

func parentPrefix(cmd *cobra.Command) string {
	if !cmd.HasParent() {
		return ""
	}
	return strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
}

// parseCommandLine splits a line into arguments, keeping single- or
// double-quoted text together
func parseCommandLine(line string) ([]string, error) {
	var args []string
	var current strings.Builder
	var inQuote rune
	quoted := false

	for _, r := range line {
		switch {
		case inQuote != 0:
			if r == inQuote {
				inQuote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			inQuote = r
			quoted = true
		case unicode.IsSpace(r):
			if current.Len() > 0 || quoted {
				args = append(args, current.String())
				current.Reset()
				quoted = false
			}
		default:
			current.WriteRune(r)
		}
	}

	if inQuote != 0 {
		return nil, fmt.Errorf("unclosed quote: %c", inQuote)
	}
	if current.Len() > 0 || quoted {
		args = append(args, current.String())
	}
	return args, nil
}
