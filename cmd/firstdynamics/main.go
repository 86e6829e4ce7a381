package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/firstdynamics/internal/cli"
	"github.com/alexanderramin/firstdynamics/internal/config"
	"github.com/alexanderramin/firstdynamics/internal/logger"
	"github.com/alexanderramin/firstdynamics/internal/normalize"
	"github.com/alexanderramin/firstdynamics/internal/notion"
	"github.com/alexanderramin/firstdynamics/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	lg, closer, err := logger.New(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer closer.Close()

	app := &cli.App{
		Config:       cfg,
		Logger:       lg,
		NewDashboard: newDashboard,
		Stdin:        os.Stdin,
	}

	// Styled output only when a person is watching; pipes get JSON.
	app.IsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		app.PromptToken = cli.MaskedTokenPrompt
	}

	return cli.NewRootCmd(app).Execute()
}

// newDashboard wires the Notion client, normalizer and aggregator. It runs
// after flags and the token are resolved.
func newDashboard(cfg config.Config, lg *log.Logger) service.DashboardService {
	client := notion.NewClient(cfg.NotionClientConfig(), notion.NewLogObserver(lg.With("module", "notion")))
	normalizer := normalize.New(normalize.DefaultSchema(), normalize.WithLogger(lg.With("module", "normalize")))
	source := service.NewNotionSource(client, normalizer, service.DatabaseIDs{
		Systems:      cfg.Databases.Systems,
		Achievements: cfg.Databases.Achievements,
		Tracker:      cfg.Databases.Tracker,
	}, cfg.TrackerWindow)
	return service.NewDashboardService(source, service.NewLogUseCaseObserver(lg.With("module", "service")))
}
