package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/firstdynamics/internal/app"
	"github.com/alexanderramin/firstdynamics/internal/cli/formatter"
)

func newDashboardCmd(a *App) *cobra.Command {
	var out outputOptions
	var demoOnError bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Fetch systems, achievements and tracker once and show the dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Dashboard == nil {
				return errors.New("dashboard service is not configured")
			}
			req := app.DashboardRequest{DemoOnError: a.Config.DemoOnError}
			if cmd.Flags().Changed("demo-on-error") {
				req.DemoOnError = demoOnError
			}

			stop := func() {}
			if !out.useJSON(a) {
				stop = formatter.StartSpinner(os.Stderr, "Fetching from Notion…")
			}
			view := a.Dashboard.View(cmd.Context(), req)
			stop()

			w := cmd.OutOrStdout()
			if out.useJSON(a) {
				if err := writeJSON(w, view); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(w, formatter.FormatDashboard(view, time.Now()))
			}

			if view.Streaks == nil && view.Error != nil {
				return fmt.Errorf("dashboard unavailable: %s", *view.Error)
			}
			return nil
		},
	}

	out.register(cmd.Flags())
	cmd.Flags().BoolVar(&demoOnError, "demo-on-error", true, "Show demo data when Notion cannot be read")

	return cmd
}

func newStreaksCmd(a *App) *cobra.Command {
	var out outputOptions

	cmd := &cobra.Command{
		Use:   "streaks",
		Short: "Show current habit streaks from the daily tracker",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Dashboard == nil {
				return errors.New("dashboard service is not configured")
			}
			resp, err := a.Dashboard.Streaks(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.useJSON(a) {
				return writeJSON(w, resp)
			}
			fmt.Fprintln(w, formatter.FormatStreaks(resp))
			return nil
		},
	}

	out.register(cmd.Flags())
	return cmd
}
