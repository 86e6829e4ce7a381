package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alexanderramin/firstdynamics/internal/app"
)

// Refresher runs refresh cycles from a single goroutine, so cycles never
// overlap. Ticks that arrive while a cycle is running are dropped by the
// ticker; manual refreshes queue behind the running cycle.
type Refresher struct {
	dashboard   app.DashboardUseCase
	interval    time.Duration
	demoOnError bool
	hub         *Hub
	logger      *log.Logger

	manual chan chan app.DashboardView

	mu     sync.RWMutex
	latest *app.DashboardView
}

func NewRefresher(dashboard app.DashboardUseCase, interval time.Duration, demoOnError bool, hub *Hub, logger *log.Logger) *Refresher {
	return &Refresher{
		dashboard:   dashboard,
		interval:    interval,
		demoOnError: demoOnError,
		hub:         hub,
		logger:      logger,
		manual:      make(chan chan app.DashboardView),
	}
}

// Run performs one cycle immediately and then one per interval until ctx is
// done.
func (r *Refresher) Run(ctx context.Context) {
	r.cycle(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.cycle(ctx)
		case reply := <-r.manual:
			reply <- r.cycle(ctx)
		}
	}
}

// Refresh asks the loop for an immediate cycle and waits for its view.
func (r *Refresher) Refresh(ctx context.Context) (app.DashboardView, bool) {
	reply := make(chan app.DashboardView, 1)
	select {
	case r.manual <- reply:
	case <-ctx.Done():
		return app.DashboardView{}, false
	}
	select {
	case v := <-reply:
		return v, true
	case <-ctx.Done():
		return app.DashboardView{}, false
	}
}

// Latest returns the view of the last finished cycle.
func (r *Refresher) Latest() (app.DashboardView, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return app.DashboardView{}, false
	}
	return *r.latest, true
}

func (r *Refresher) cycle(ctx context.Context) app.DashboardView {
	view := r.dashboard.View(ctx, app.DashboardRequest{DemoOnError: r.demoOnError})

	r.mu.Lock()
	r.latest = &view
	r.mu.Unlock()

	if !view.Live {
		r.logger.Warn("refresh cycle failed", "error", deref(view.Error), "demo", view.Systems != nil)
	} else {
		r.logger.Debug("refresh cycle", "systems", len(view.Systems), "achievements", len(view.Achievements))
	}

	if r.hub != nil {
		msg, err := json.Marshal(updateMessage{Type: "dashboard", Data: view})
		if err != nil {
			r.logger.Error("encoding update", "error", err)
			return view
		}
		r.hub.Broadcast(ctx, msg)
	}
	return view
}

type updateMessage struct {
	Type string            `json:"type"`
	Data app.DashboardView `json:"data"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
