package service

import (
	"context"

	"github.com/alexanderramin/firstdynamics/internal/app"
	"github.com/alexanderramin/firstdynamics/internal/domain"
)

type DashboardService interface {
	app.DashboardUseCase
	app.StreaksUseCase
}

// Source retrieves and normalizes the three dashboard collections. Each
// method performs exactly one upstream request.
type Source interface {
	Systems(ctx context.Context) ([]domain.SystemStatusEntry, error)
	Achievements(ctx context.Context) ([]domain.AchievementEntry, error)
	Tracker(ctx context.Context) ([]domain.DailyTrackerEntry, error)
}
