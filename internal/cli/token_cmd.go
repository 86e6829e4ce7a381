package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/firstdynamics/internal/cli/formatter"
	"github.com/alexanderramin/firstdynamics/internal/config"
	"github.com/alexanderramin/firstdynamics/internal/keyring"
	"github.com/alexanderramin/firstdynamics/internal/notion"
)

func newTokenCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the Notion token stored in the OS keyring",
		// Token management must work without a resolvable token.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	}

	cmd.AddCommand(
		newTokenSetCmd(a),
		newTokenDeleteCmd(),
		newTokenStatusCmd(a),
	)
	return cmd
}

func newTokenSetCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "set [TOKEN]",
		Short: "Store a Notion token (prompted for, or read from stdin, when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var token string
			if len(args) == 1 {
				token = args[0]
			} else if a.PromptToken != nil {
				t, err := a.PromptToken()
				if err != nil {
					return fmt.Errorf("reading token: %w", err)
				}
				token = t
			} else {
				in := a.Stdin
				if in == nil {
					in = os.Stdin
				}
				line, err := bufio.NewReader(in).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("reading token: %w", err)
				}
				token = line
			}
			token = strings.TrimSpace(token)
			if err := keyring.SetToken(token); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("Token stored in keyring."))
			return nil
		},
	}
}

func newTokenDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored Notion token",
		RunE: func(cmd *cobra.Command, args []string) error {
			err := keyring.DeleteToken()
			if errors.Is(err, keyring.ErrNotFound) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No token stored."))
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token removed from keyring.")
			return nil
		},
	}
}

func newTokenStatusCmd(a *App) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show where the Notion token would be read from",
		RunE: func(cmd *cobra.Command, args []string) error {
			flagToken, _ := cmd.Flags().GetString("token")
			cfg := a.Config
			if u, _ := cmd.Flags().GetString("base-url"); u != "" {
				cfg.Notion.BaseURL = u
			}
			source, err := cfg.ResolveToken(flagToken, a.TokenLookup)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch source {
			case config.TokenNone:
				fmt.Fprintln(w, formatter.StyleYellow.Render("No token configured.")+" "+
					formatter.Dim("Requests go out unauthenticated, which only works through a relay."))
			default:
				fmt.Fprintf(w, "Token source: %s (%s)\n", formatter.Bold(source), maskToken(cfg.Notion.Token))
			}
			fmt.Fprintf(w, "Base URL:     %s\n", cfg.Notion.BaseURL)
			if !keyring.IsAvailable() {
				fmt.Fprintln(w, formatter.Dim("OS keyring is not available on this machine."))
			}

			if check {
				client := notion.NewClient(cfg.NotionClientConfig(), notion.NoopObserver{})
				if client.Available(cmd.Context()) {
					fmt.Fprintln(w, formatter.StyleGreen.Render("Notion accepted the token."))
				} else {
					fmt.Fprintln(w, formatter.StyleRed.Render("Notion did not accept the token or is unreachable."))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Call Notion to verify the token")
	return cmd
}

// maskToken keeps the first and last four characters.
func maskToken(t string) string {
	if len(t) <= 8 {
		return strings.Repeat("*", len(t))
	}
	return t[:4] + strings.Repeat("*", len(t)-8) + t[len(t)-4:]
}
