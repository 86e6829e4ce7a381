package app

import (
	"context"
)

type DashboardUseCase interface {
	// Aggregate runs one refresh cycle.
	Aggregate(ctx context.Context) DashboardResult
	// View runs one refresh cycle and applies the demo fallback.
	View(ctx context.Context, req DashboardRequest) DashboardView
}

type StreaksUseCase interface {
	Streaks(ctx context.Context) (*StreaksResponse, error)
}
