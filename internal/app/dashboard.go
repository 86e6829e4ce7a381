package app

import (
	"time"

	"github.com/alexanderramin/firstdynamics/internal/domain"
)

// DashboardResult is the outcome of one refresh cycle. It is all-or-nothing:
// either every data field is set and Error is nil, or every data field is
// nil and Error carries the failure.
type DashboardResult struct {
	Systems      []domain.SystemStatusEntry `json:"systems"`
	Achievements []domain.AchievementEntry  `json:"achievements"`
	Streaks      *domain.StreakSummary      `json:"streaks"`
	LastUpdated  *time.Time                 `json:"lastUpdated"`
	Error        *string                    `json:"error"`
}

// OK reports whether the cycle succeeded.
func (r DashboardResult) OK() bool {
	return r.Error == nil
}

// FailedResult returns the error shape of DashboardResult.
func FailedResult(err error) DashboardResult {
	msg := err.Error()
	return DashboardResult{Error: &msg}
}

// SucceededResult returns the success shape of DashboardResult. Nil slices
// are replaced by empty ones so that only failures encode as null.
func SucceededResult(systems []domain.SystemStatusEntry, achievements []domain.AchievementEntry, streaks domain.StreakSummary, at time.Time) DashboardResult {
	if systems == nil {
		systems = []domain.SystemStatusEntry{}
	}
	if achievements == nil {
		achievements = []domain.AchievementEntry{}
	}
	at = at.UTC()
	return DashboardResult{
		Systems:      systems,
		Achievements: achievements,
		Streaks:      &streaks,
		LastUpdated:  &at,
	}
}

type DashboardRequest struct {
	// DemoOnError substitutes the demo dataset when the cycle fails.
	DemoOnError bool
}

// DashboardTotals are the derived counters shown in the dashboard header.
type DashboardTotals struct {
	TotalStreakDays   int `json:"totalStreakDays"`
	UnlockedCount     int `json:"unlockedCount"`
	AchievementsTotal int `json:"achievementsTotal"`
}

// DashboardView is what presentation layers render: a result that may be
// demo data, flagged by Live.
type DashboardView struct {
	DashboardResult
	Live   bool            `json:"live"`
	Totals DashboardTotals `json:"totals"`
}

// StreakCategoryView is one row of the streak summary.
type StreakCategoryView struct {
	Key   string `json:"key"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Days  int    `json:"days"`
	Goal  int    `json:"goal"`
	Today *bool  `json:"today"`
}

type StreaksResponse struct {
	Summary    domain.StreakSummary `json:"summary"`
	Categories []StreakCategoryView `json:"categories"`
	Days       int                  `json:"days"`
	LatestDate *domain.Date         `json:"latestDate"`
}
