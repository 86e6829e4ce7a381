package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/firstdynamics/internal/relay"
	"github.com/alexanderramin/firstdynamics/internal/server"
)

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newServeCmd(a *App) *cobra.Command {
	var addr string
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Refresh the dashboard on a timer and serve it over HTTP and websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Dashboard == nil {
				return errors.New("dashboard service is not configured")
			}
			if cmd.Flags().Changed("addr") {
				a.Config.Addr = addr
			}
			if cmd.Flags().Changed("interval") {
				a.Config.RefreshInterval = interval
			}
			if err := a.Config.Validate(); err != nil {
				return err
			}

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			srv := server.New(a.Dashboard, server.Options{
				RefreshInterval: a.Config.RefreshInterval,
				DemoOnError:     a.Config.DemoOnError,
				AllowedOrigins:  a.Config.AllowedOrigins,
			}, a.Logger.With("module", "server"))
			return srv.ListenAndServe(ctx, a.Config.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	cmd.Flags().DurationVar(&interval, "interval", time.Minute, "Refresh interval")

	return cmd
}

func newRelayCmd(a *App) *cobra.Command {
	var addr string
	var origins []string

	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Run the CORS relay that attaches the Notion token for browser clients",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Config.Notion.Token == "" {
				return errors.New("relay needs a Notion token: pass --token, set FD_NOTION_TOKEN or run 'firstdynamics token set'")
			}
			if cmd.Flags().Changed("addr") {
				a.Config.RelayAddr = addr
			}
			if cmd.Flags().Changed("allow-origin") {
				a.Config.AllowedOrigins = origins
			}

			upstream := a.Config.Notion.BaseURL
			r := relay.New(relay.Config{
				Upstream:       upstream,
				Token:          a.Config.Notion.Token,
				Version:        a.Config.Notion.Version,
				AllowedOrigins: a.Config.AllowedOrigins,
				Timeout:        a.Config.Notion.Timeout,
			}, a.Logger.With("module", "relay"))

			ctx, stop := signalContext(cmd.Context())
			defer stop()

			httpSrv := &http.Server{
				Addr:              a.Config.RelayAddr,
				Handler:           r.Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() { errCh <- httpSrv.ListenAndServe() }()
			a.Logger.Info("relay listening", "addr", a.Config.RelayAddr, "upstream", upstream, "origins", a.Config.AllowedOrigins)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return httpSrv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8787", "Listen address")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", nil, "Allowed origin prefix (repeatable)")

	return cmd
}
