package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/firstdynamics/internal/domain"
	"github.com/alexanderramin/firstdynamics/internal/normalize"
	"github.com/alexanderramin/firstdynamics/internal/notion"
)

// DatabaseIDs identifies the three Notion databases the dashboard reads.
type DatabaseIDs struct {
	Systems      string
	Achievements string
	Tracker      string
}

type notionSource struct {
	client     notion.Client
	normalizer *normalize.Normalizer
	ids        DatabaseIDs
	window     int
}

// NewNotionSource reads the dashboard collections through client. The
// tracker query asks for the newest window days and keeps at most that many.
func NewNotionSource(client notion.Client, normalizer *normalize.Normalizer, ids DatabaseIDs, window int) Source {
	if window <= 0 {
		window = 30
	}
	return &notionSource{
		client:     client,
		normalizer: normalizer,
		ids:        ids,
		window:     window,
	}
}

func (s *notionSource) Systems(ctx context.Context) ([]domain.SystemStatusEntry, error) {
	resp, err := s.client.QueryDatabase(ctx, s.ids.Systems, notion.QueryRequest{})
	if err != nil {
		return nil, fmt.Errorf("fetching systems: %w", err)
	}
	return s.normalizer.SystemStatuses(resp.Results), nil
}

func (s *notionSource) Achievements(ctx context.Context) ([]domain.AchievementEntry, error) {
	resp, err := s.client.QueryDatabase(ctx, s.ids.Achievements, notion.QueryRequest{})
	if err != nil {
		return nil, fmt.Errorf("fetching achievements: %w", err)
	}
	return s.normalizer.Achievements(resp.Results), nil
}

func (s *notionSource) Tracker(ctx context.Context) ([]domain.DailyTrackerEntry, error) {
	resp, err := s.client.QueryDatabase(ctx, s.ids.Tracker, notion.QueryRequest{
		Sorts: []notion.Sort{{
			Property:  s.normalizer.Schema().Tracker.Date,
			Direction: notion.Descending,
		}},
		PageSize: s.window,
	})
	if err != nil {
		return nil, fmt.Errorf("fetching tracker: %w", err)
	}
	pages := resp.Results
	if len(pages) > s.window {
		pages = pages[:s.window]
	}
	return s.normalizer.TrackerEntries(pages), nil
}
