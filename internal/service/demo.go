package service

import (
	"time"

	"github.com/alexanderramin/firstdynamics/internal/app"
	"github.com/alexanderramin/firstdynamics/internal/domain"
)

// DemoData returns the static placeholder dataset shown when live data is
// unavailable. Every call returns fresh slices.
func DemoData(at time.Time) app.DashboardResult {
	systems := []domain.SystemStatusEntry{
		demoSystem("Сон", "7.9 ч", "7-8", domain.StatusOK),
		demoSystem("Вода", "3 л", ">2.5", domain.StatusOK),
		demoSystem("Физ.форма", "✓", "✓", domain.StatusOK),
		demoSystem("Здоровье", "103.3 кг", "89-91", domain.StatusWarning),
		demoSystem("Deep Work", "2.5 ч", "≥4 ч", domain.StatusWarning),
		demoSystem("Питание", "8", "7-10", domain.StatusOK),
	}

	achievements := []domain.AchievementEntry{
		demoAchievement("First Flame: Deep Work", "Deep Work", domain.LevelBronze, "🔥", 1, 1),
		demoAchievement("First Flame: Clean Eating", "Clean Eating", domain.LevelBronze, "🔥", 1, 0),
		demoAchievement("First Flame: Bedtime", "Bedtime", domain.LevelBronze, "🔥", 1, 0),
		demoAchievement("First Flame: Movement", "Movement", domain.LevelBronze, "🔥", 1, 0),
		demoAchievement("Week Warrior", "", domain.LevelSilver, "⚔️", 7, 0),
		demoAchievement("All Stars: 3 Days", "", domain.LevelBronze, "⭐", 3, 0),
		demoAchievement("Two Week Titan", "", domain.LevelGold, "💪", 14, 0),
		demoAchievement("Month Master", "", domain.LevelPlatinum, "🏆", 30, 0),
		demoAchievement("Diamond Legend", "", domain.LevelDiamond, "💎", 60, 0),
		demoAchievement("Unicorn", "", domain.LevelDiamond, "🦄", 100, 0),
	}

	streaks := domain.StreakSummary{DeepWork: 5, CleanEating: 3, Bedtime: 2, Movement: 4}
	return app.SucceededResult(systems, achievements, streaks, at)
}

func demoSystem(name, value, norm string, status domain.SystemStatus) domain.SystemStatusEntry {
	return domain.SystemStatusEntry{
		ID:     "demo-system-" + name,
		Name:   name,
		Value:  domain.TextValue(value),
		Norm:   norm,
		Status: status,
	}
}

func demoAchievement(name, category string, level domain.AchievementLevel, emoji string, required, earned int) domain.AchievementEntry {
	return domain.AchievementEntry{
		ID:           "demo-achievement-" + name,
		Name:         name,
		Category:     category,
		Level:        level,
		Emoji:        emoji,
		RequiredDays: required,
		TimesEarned:  earned,
		IsUnlocked:   earned > 0,
	}
}
