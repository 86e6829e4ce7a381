package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/firstdynamics/internal/config"
	"github.com/alexanderramin/firstdynamics/internal/service"
)

// App holds configuration and services shared by all commands.
type App struct {
	Config config.Config
	Logger *log.Logger

	// Dashboard is used as-is when set. Otherwise NewDashboard builds it after
	// flags and the token have been resolved.
	Dashboard    service.DashboardService
	NewDashboard func(cfg config.Config, logger *log.Logger) service.DashboardService

	// TokenLookup reads a stored token. Nil means the OS keyring.
	TokenLookup func() (string, error)
	// IsTerminal reports whether stdout is a terminal. Nil means it is not.
	IsTerminal func() bool
	Stdin      io.Reader
	// PromptToken reads a secret interactively. Nil reads a line from Stdin.
	PromptToken func() (string, error)
}

func (a *App) terminal() bool {
	return a.IsTerminal != nil && a.IsTerminal()
}

// NewRootCmd creates the top-level "firstdynamics" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var token, baseURL string

	root := &cobra.Command{
		Use:           "firstdynamics",
		Short:         "Habit streaks, achievements and system health from Notion",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if baseURL != "" {
				app.Config.Notion.BaseURL = baseURL
			}
			source, err := app.Config.ResolveToken(token, app.TokenLookup)
			if err != nil {
				return err
			}
			app.Logger.Debug("notion token resolved", "source", source)

			if app.Dashboard == nil && app.NewDashboard != nil {
				app.Dashboard = app.NewDashboard(app.Config, app.Logger)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&token, "token", "", "Notion integration token (overrides FD_NOTION_TOKEN and the keyring)")
	root.PersistentFlags().StringVar(&baseURL, "base-url", "", "Notion API or relay base URL")

	root.AddCommand(
		newDashboardCmd(app),
		newStreaksCmd(app),
		newServeCmd(app),
		newRelayCmd(app),
		newTokenCmd(app),
	)

	return root
}
