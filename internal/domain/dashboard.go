package domain

import "fmt"

type SystemStatusEntry struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Value  MetricValue  `json:"value"`
	Norm   string       `json:"norm"`
	Status SystemStatus `json:"status"`
}

type AchievementEntry struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Category     string           `json:"category"`
	Level        AchievementLevel `json:"level"`
	Description  string           `json:"description"`
	Emoji        string           `json:"emoji"`
	RequiredDays int              `json:"requiredDays"`
	TimesEarned  int              `json:"timesEarned"`
	IsUnlocked   bool             `json:"isUnlocked"`
	IsInProgress bool             `json:"isInProgress"`
	FirstEarned  *string          `json:"firstEarned"`
	LastEarned   *string          `json:"lastEarned"`
}

// Validate checks the data expectations of an achievement. The normalizer
// only logs a failure; upstream records are reported as they are.
func (a AchievementEntry) Validate() error {
	if a.RequiredDays < 0 {
		return fmt.Errorf("achievement %q: requiredDays must be non-negative, got %d", a.Name, a.RequiredDays)
	}
	if a.TimesEarned < 0 {
		return fmt.Errorf("achievement %q: timesEarned must be non-negative, got %d", a.Name, a.TimesEarned)
	}
	if a.IsUnlocked && a.TimesEarned < 1 {
		return fmt.Errorf("achievement %q: unlocked but timesEarned is %d", a.Name, a.TimesEarned)
	}
	return nil
}

type DailyTrackerEntry struct {
	ID               string `json:"id"`
	Date             Date   `json:"date"`
	DeepWorkDone     bool   `json:"deepWorkDone"`
	CleanEatingScore int    `json:"cleanEatingScore"` // 0–10 scale
	BedtimeCompliant bool   `json:"bedtimeCompliant"`
	MorningMovement  bool   `json:"morningMovement"`
}

type StreakSummary struct {
	DeepWork    int `json:"deepWork"`
	CleanEating int `json:"cleanEating"`
	Bedtime     int `json:"bedtime"`
	Movement    int `json:"movement"`
}

// Total is the sum of all four streaks.
func (s StreakSummary) Total() int {
	return s.DeepWork + s.CleanEating + s.Bedtime + s.Movement
}

// CountUnlocked returns how many achievements are unlocked.
func CountUnlocked(achievements []AchievementEntry) int {
	n := 0
	for _, a := range achievements {
		if a.IsUnlocked {
			n++
		}
	}
	return n
}
