package service

import (
	"context"
	"sync"
	"time"

	"github.com/alexanderramin/firstdynamics/internal/app"
	"github.com/alexanderramin/firstdynamics/internal/domain"
	"github.com/alexanderramin/firstdynamics/internal/streak"
)

type dashboardService struct {
	source   Source
	now      func() time.Time
	observer UseCaseObserver
}

// NewDashboardService aggregates the three collections read from source.
func NewDashboardService(source Source, observers ...UseCaseObserver) DashboardService {
	return newDashboardService(source, observers...)
}

func newDashboardService(source Source, observers ...UseCaseObserver) *dashboardService {
	return &dashboardService{
		source:   source,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

// firstError keeps the first failure reported by any retrieval and cancels
// the others.
type firstError struct {
	once   sync.Once
	err    error
	cancel context.CancelFunc
}

func (f *firstError) set(err error) {
	f.once.Do(func() {
		f.err = err
		f.cancel()
	})
}

func (s *dashboardService) Aggregate(ctx context.Context) app.DashboardResult {
	startedAt := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	failed := &firstError{cancel: cancel}

	var (
		wg           sync.WaitGroup
		systems      []domain.SystemStatusEntry
		achievements []domain.AchievementEntry
		tracker      []domain.DailyTrackerEntry
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		v, err := s.source.Systems(ctx)
		if err != nil {
			failed.set(err)
			return
		}
		systems = v
	}()
	go func() {
		defer wg.Done()
		v, err := s.source.Achievements(ctx)
		if err != nil {
			failed.set(err)
			return
		}
		achievements = v
	}()
	go func() {
		defer wg.Done()
		v, err := s.source.Tracker(ctx)
		if err != nil {
			failed.set(err)
			return
		}
		tracker = v
	}()
	wg.Wait()

	if failed.err != nil {
		s.observe(ctx, "dashboard.aggregate", startedAt, failed.err, nil)
		return app.FailedResult(failed.err)
	}

	streaks := streak.Calculate(tracker)
	result := app.SucceededResult(systems, achievements, streaks, s.now())
	s.observe(ctx, "dashboard.aggregate", startedAt, nil, map[string]any{
		"systems":      len(systems),
		"achievements": len(achievements),
		"tracker_days": len(tracker),
	})
	return result
}

func (s *dashboardService) View(ctx context.Context, req app.DashboardRequest) app.DashboardView {
	result := s.Aggregate(ctx)
	view := app.DashboardView{DashboardResult: result, Live: result.OK()}

	if !result.OK() && req.DemoOnError {
		demo := DemoData(s.now())
		demo.Error = result.Error
		view = app.DashboardView{DashboardResult: demo, Live: false}
	}
	view.Totals = totals(view.DashboardResult)
	return view
}

func (s *dashboardService) Streaks(ctx context.Context) (*app.StreaksResponse, error) {
	startedAt := time.Now()
	entries, err := s.source.Tracker(ctx)
	if err != nil {
		s.observe(ctx, "dashboard.streaks", startedAt, err, nil)
		return nil, err
	}

	summary := streak.Calculate(entries)
	sorted := streak.SortNewestFirst(entries)

	resp := &app.StreaksResponse{Summary: summary, Days: len(entries)}
	if len(sorted) > 0 && !sorted[0].Date.IsZero() {
		latest := sorted[0].Date
		resp.LatestDate = &latest
	}
	for _, c := range streak.Categories() {
		row := app.StreakCategoryView{
			Key:  string(c.Key),
			Name: c.Name,
			Icon: c.Icon,
			Days: streak.Value(summary, c.Key),
			Goal: c.Goal,
		}
		if len(sorted) > 0 {
			done := c.Done(sorted[0])
			row.Today = &done
		}
		resp.Categories = append(resp.Categories, row)
	}

	s.observe(ctx, "dashboard.streaks", startedAt, nil, map[string]any{"tracker_days": len(entries)})
	return resp, nil
}

func (s *dashboardService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:     name,
		Duration: time.Since(startedAt),
		Success:  err == nil,
		Err:      err,
		Fields:   fields,
	})
}

func totals(r app.DashboardResult) app.DashboardTotals {
	t := app.DashboardTotals{
		UnlockedCount:     domain.CountUnlocked(r.Achievements),
		AchievementsTotal: len(r.Achievements),
	}
	if r.Streaks != nil {
		t.TotalStreakDays = r.Streaks.Total()
	}
	return t
}
