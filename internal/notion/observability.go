package notion

import (
	"github.com/charmbracelet/log"
)

// CallEvent records metadata about a single Notion API call.
type CallEvent struct {
	Operation  string
	DatabaseID string
	StatusCode int
	Results    int
	LatencyMs  int64
	Success    bool
	ErrorCode  string
}

// Observer receives events about Notion calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events to a logger at debug level, failures at warn.
type LogObserver struct {
	logger *log.Logger
}

func NewLogObserver(logger *log.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(event CallEvent) {
	kv := []any{
		"op", event.Operation,
		"database", event.DatabaseID,
		"status", event.StatusCode,
		"latency_ms", event.LatencyMs,
	}
	if !event.Success {
		o.logger.Warn("notion_call failed", append(kv, "error_code", event.ErrorCode)...)
		return
	}
	o.logger.Debug("notion_call", append(kv, "results", event.Results)...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
