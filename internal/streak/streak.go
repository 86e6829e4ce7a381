// Package streak computes current habit streaks from daily tracker entries.
package streak

import (
	"slices"

	"github.com/alexanderramin/firstdynamics/internal/domain"
)

// CleanEatingThreshold is the minimum nutrition score that counts as a clean
// eating day.
const CleanEatingThreshold = 7

// Goal is the per-category streak length the dashboard shows progress
// against.
const Goal = 7

type Category string

const (
	DeepWork    Category = "deep_work"
	CleanEating Category = "clean_eating"
	Bedtime     Category = "bedtime"
	Movement    Category = "movement"
)

// CategoryInfo describes one streak category for display.
type CategoryInfo struct {
	Key  Category
	Name string
	Icon string
	Goal int
	done func(domain.DailyTrackerEntry) bool
}

// Done reports whether entry satisfies the category on that day.
func (c CategoryInfo) Done(entry domain.DailyTrackerEntry) bool {
	return c.done(entry)
}

var categories = []CategoryInfo{
	{Key: DeepWork, Name: "Deep Work", Icon: "🧠", Goal: Goal,
		done: func(e domain.DailyTrackerEntry) bool { return e.DeepWorkDone }},
	{Key: CleanEating, Name: "Clean Eating", Icon: "🍽️", Goal: Goal,
		done: func(e domain.DailyTrackerEntry) bool { return e.CleanEatingScore >= CleanEatingThreshold }},
	{Key: Bedtime, Name: "Bedtime", Icon: "🌙", Goal: Goal,
		done: func(e domain.DailyTrackerEntry) bool { return e.BedtimeCompliant }},
	{Key: Movement, Name: "Movement", Icon: "🏃", Goal: Goal,
		done: func(e domain.DailyTrackerEntry) bool { return e.MorningMovement }},
}

// Categories returns the four categories in display order.
func Categories() []CategoryInfo {
	return slices.Clone(categories)
}

// Value returns the streak for key from s.
func Value(s domain.StreakSummary, key Category) int {
	switch key {
	case DeepWork:
		return s.DeepWork
	case CleanEating:
		return s.CleanEating
	case Bedtime:
		return s.Bedtime
	case Movement:
		return s.Movement
	}
	return 0
}

// Calculate returns the current streak of every category. Entries may arrive
// in any order; they are sorted newest first on a copy, with undated entries
// last and ties kept in input order. Each streak counts consecutive entries
// from the newest one until the first day that misses.
func Calculate(entries []domain.DailyTrackerEntry) domain.StreakSummary {
	sorted := SortNewestFirst(entries)
	return domain.StreakSummary{
		DeepWork:    run(sorted, categories[0]),
		CleanEating: run(sorted, categories[1]),
		Bedtime:     run(sorted, categories[2]),
		Movement:    run(sorted, categories[3]),
	}
}

// SortNewestFirst returns a copy of entries ordered by date descending.
func SortNewestFirst(entries []domain.DailyTrackerEntry) []domain.DailyTrackerEntry {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b domain.DailyTrackerEntry) int {
		switch {
		case a.Date.IsZero() && b.Date.IsZero():
			return 0
		case a.Date.IsZero():
			return 1
		case b.Date.IsZero():
			return -1
		case a.Date.After(b.Date):
			return -1
		case a.Date.Before(b.Date):
			return 1
		}
		return 0
	})
	return sorted
}

func run(sorted []domain.DailyTrackerEntry, c CategoryInfo) int {
	n := 0
	for _, e := range sorted {
		if !c.done(e) {
			break
		}
		n++
	}
	return n
}
