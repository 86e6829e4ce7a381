package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/alexanderramin/firstdynamics/internal/app"
	"github.com/alexanderramin/firstdynamics/internal/domain"
	"github.com/alexanderramin/firstdynamics/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSource() *fakeSource {
	return &fakeSource{
		systems: []domain.SystemStatusEntry{
			{ID: "s1", Name: "Сон", Value: domain.TextValue("7.9 ч"), Norm: "7-8", Status: domain.StatusOK},
		},
		achievements: []domain.AchievementEntry{
			testutil.NewTestAchievement("First Flame", testutil.WithUnlocked(1)),
			testutil.NewTestAchievement("Week Warrior", testutil.WithLevel(domain.LevelSilver), testutil.WithInProgress()),
		},
		tracker: []domain.DailyTrackerEntry{
			testutil.NewTrackerEntry(domain.NewDate(2025, 1, 4), testutil.WithAllHabits()),
			testutil.NewTrackerEntry(domain.NewDate(2025, 1, 5), testutil.WithAllHabits(), testutil.WithBedtime(false)),
			testutil.NewTrackerEntry(domain.NewDate(2025, 1, 3), testutil.WithDeepWork(true)),
		},
	}
}

func TestAggregate_Success(t *testing.T) {
	src := sampleSource()
	obs := &recordingUseCaseObserver{}
	svc := newTestService(src, obs)

	result := svc.Aggregate(context.Background())

	require.True(t, result.OK())
	assert.Len(t, result.Systems, 1)
	assert.Len(t, result.Achievements, 2)
	require.NotNil(t, result.Streaks)
	assert.Equal(t, domain.StreakSummary{DeepWork: 3, CleanEating: 2, Bedtime: 0, Movement: 2}, *result.Streaks)
	require.NotNil(t, result.LastUpdated)
	assert.Equal(t, fixedNow, *result.LastUpdated)

	assert.Equal(t, 1, src.count("systems"))
	assert.Equal(t, 1, src.count("achievements"))
	assert.Equal(t, 1, src.count("tracker"))

	require.Len(t, obs.events, 1)
	assert.Equal(t, "dashboard.aggregate", obs.events[0].Name)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 3, obs.events[0].Fields["tracker_days"])
}

func TestAggregate_EmptyCollectionsEncodeAsArrays(t *testing.T) {
	svc := newTestService(&fakeSource{})

	result := svc.Aggregate(context.Background())
	require.True(t, result.OK())

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"systems": [],
		"achievements": [],
		"streaks": {"deepWork":0,"cleanEating":0,"bedtime":0,"movement":0},
		"lastUpdated": "2025-01-05T09:30:00Z",
		"error": null
	}`, string(data))
}

func TestAggregate_AllRetrievalsFail(t *testing.T) {
	boom := errors.New("network down")
	svc := newTestService(&fakeSource{
		systemsErr:      boom,
		achievementsErr: boom,
		trackerErr:      boom,
	})

	result := svc.Aggregate(context.Background())

	assert.False(t, result.OK())
	assert.Nil(t, result.Systems)
	assert.Nil(t, result.Achievements)
	assert.Nil(t, result.Streaks)
	assert.Nil(t, result.LastUpdated)
	require.NotNil(t, result.Error)
	assert.Equal(t, "network down", *result.Error)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"systems":null,"achievements":null,"streaks":null,"lastUpdated":null,"error":"network down"}`, string(data))
}

func TestAggregate_OneFailureDiscardsEverything(t *testing.T) {
	src := sampleSource()
	src.trackerErr = errors.New("fetching tracker: notion api error: 500")
	svc := newTestService(src)

	result := svc.Aggregate(context.Background())

	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "fetching tracker")
	assert.Nil(t, result.Systems)
	assert.Nil(t, result.Achievements)
	assert.Nil(t, result.Streaks)
}

func TestAggregate_FailureCancelsPendingRetrievals(t *testing.T) {
	src := sampleSource()
	src.blockAchievements = true
	src.systemsErr = errors.New("systems unavailable")
	obs := &recordingUseCaseObserver{}
	svc := newTestService(src, obs)

	result := svc.Aggregate(context.Background())

	require.NotNil(t, result.Error)
	assert.Equal(t, "systems unavailable", *result.Error)
	require.Len(t, obs.events, 1)
	assert.False(t, obs.events[0].Success)
}

func TestAggregate_CallerCancellation(t *testing.T) {
	src := sampleSource()
	src.blockAchievements = true
	svc := newTestService(src)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := svc.Aggregate(ctx)
	require.NotNil(t, result.Error)
	assert.Contains(t, *result.Error, "context canceled")
}

func TestView_LiveData(t *testing.T) {
	svc := newTestService(sampleSource())

	view := svc.View(context.Background(), app.DashboardRequest{DemoOnError: true})

	assert.True(t, view.Live)
	assert.Nil(t, view.Error)
	assert.Equal(t, app.DashboardTotals{TotalStreakDays: 7, UnlockedCount: 1, AchievementsTotal: 2}, view.Totals)
}

func TestView_DemoFallback(t *testing.T) {
	svc := newTestService(&fakeSource{systemsErr: errors.New("offline")})

	view := svc.View(context.Background(), app.DashboardRequest{DemoOnError: true})

	assert.False(t, view.Live)
	require.NotNil(t, view.Error)
	assert.Equal(t, "offline", *view.Error)
	assert.Len(t, view.Systems, 6)
	assert.Len(t, view.Achievements, 10)
	require.NotNil(t, view.Streaks)
	assert.Equal(t, 14, view.Totals.TotalStreakDays)
	assert.Equal(t, 1, view.Totals.UnlockedCount)
	assert.Equal(t, 10, view.Totals.AchievementsTotal)
}

func TestView_NoFallback(t *testing.T) {
	svc := newTestService(&fakeSource{systemsErr: errors.New("offline")})

	view := svc.View(context.Background(), app.DashboardRequest{})

	assert.False(t, view.Live)
	assert.Nil(t, view.Systems)
	assert.Nil(t, view.Streaks)
	assert.Equal(t, app.DashboardTotals{}, view.Totals)
}

func TestStreaks(t *testing.T) {
	svc := newTestService(sampleSource())

	resp, err := svc.Streaks(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Days)
	require.NotNil(t, resp.LatestDate)
	assert.Equal(t, domain.NewDate(2025, 1, 5), *resp.LatestDate)
	require.Len(t, resp.Categories, 4)

	bedtime := resp.Categories[2]
	assert.Equal(t, "bedtime", bedtime.Key)
	assert.Equal(t, 0, bedtime.Days)
	require.NotNil(t, bedtime.Today)
	assert.False(t, *bedtime.Today)

	deep := resp.Categories[0]
	assert.Equal(t, 3, deep.Days)
	assert.Equal(t, 7, deep.Goal)
	assert.True(t, *deep.Today)
}

func TestStreaks_Error(t *testing.T) {
	svc := newTestService(&fakeSource{trackerErr: errors.New("nope")})

	_, err := svc.Streaks(context.Background())
	assert.EqualError(t, err, "nope")
}

func TestDemoData(t *testing.T) {
	demo := DemoData(fixedNow)

	require.True(t, demo.OK())
	assert.Equal(t, domain.StreakSummary{DeepWork: 5, CleanEating: 3, Bedtime: 2, Movement: 4}, *demo.Streaks)
	for _, a := range demo.Achievements {
		assert.NoError(t, a.Validate())
	}
	assert.Equal(t, domain.StatusWarning, demo.Systems[3].Status)

	demo.Systems[0].Name = "changed"
	assert.Equal(t, "Сон", DemoData(fixedNow).Systems[0].Name)
}
