package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/alexanderramin/firstdynamics/internal/domain"
)

// fakeSource returns canned collections. A non-nil error field makes that
// retrieval fail; a non-nil block channel makes it wait for cancellation.
type fakeSource struct {
	systems      []domain.SystemStatusEntry
	achievements []domain.AchievementEntry
	tracker      []domain.DailyTrackerEntry

	systemsErr      error
	achievementsErr error
	trackerErr      error

	blockAchievements bool

	mu    sync.Mutex
	calls map[string]int
}

func (f *fakeSource) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = map[string]int{}
	}
	f.calls[name]++
}

func (f *fakeSource) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeSource) Systems(ctx context.Context) ([]domain.SystemStatusEntry, error) {
	f.record("systems")
	return f.systems, f.systemsErr
}

func (f *fakeSource) Achievements(ctx context.Context) ([]domain.AchievementEntry, error) {
	f.record("achievements")
	if f.blockAchievements {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(5 * time.Second):
			return nil, errors.New("achievements were never cancelled")
		}
	}
	return f.achievements, f.achievementsErr
}

func (f *fakeSource) Tracker(ctx context.Context) ([]domain.DailyTrackerEntry, error) {
	f.record("tracker")
	return f.tracker, f.trackerErr
}

type recordingUseCaseObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingUseCaseObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

var fixedNow = time.Date(2025, 1, 5, 9, 30, 0, 0, time.UTC)

func newTestService(src Source, observers ...UseCaseObserver) *dashboardService {
	svc := newDashboardService(src, observers...)
	svc.now = func() time.Time { return fixedNow }
	return svc
}
