package service

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// UseCaseEvent describes one finished dashboard operation.
type UseCaseEvent struct {
	Name     string
	Duration time.Duration
	Success  bool
	Err      error
	// Fields carries operation specific counts such as tracker_days.
	Fields map[string]any
}

type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *log.Logger
}

// NewLogUseCaseObserver logs each operation. Failures go out at warn level:
// an unreachable Notion is routine and the dashboard falls back to demo data.
func NewLogUseCaseObserver(logger *log.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	kv := []any{"op", event.Name, "took", event.Duration.Round(time.Millisecond)}
	for _, k := range slices.Sorted(maps.Keys(event.Fields)) {
		kv = append(kv, k, event.Fields[k])
	}
	if event.Err != nil {
		o.logger.Warn("dashboard operation failed", append(kv, "err", event.Err)...)
		return
	}
	o.logger.Debug("dashboard operation done", kv...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
