package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/firstdynamics/internal/domain"
)

func TestRenderTable_Alignment(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{{"long cell", "x"}, {"s"}})
	assert.Contains(t, out, "long cell  x")
	assert.Equal(t, "", RenderTable(nil, nil))
}

func TestHumanTimestampFrom(t *testing.T) {
	tests := []struct {
		name  string
		input time.Time
		want  string
	}{
		{"seconds", now.Add(-10 * time.Second), "Just now"},
		{"minutes", now.Add(-5 * time.Minute), "5m ago"},
		{"hours", now.Add(-3 * time.Hour), "3h ago"},
		{"days", now.Add(-48 * time.Hour), "Jan 3, 10:00"},
		{"future", now.Add(time.Hour), "Jan 5, 11:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanTimestampFrom(tt.input, now))
		})
	}
}

func TestPlural(t *testing.T) {
	assert.Equal(t, "1 day", Plural(1, "day", "days"))
	assert.Equal(t, "0 days", Plural(0, "day", "days"))
}

func TestStatusIndicator(t *testing.T) {
	assert.Contains(t, StatusIndicator(domain.StatusCritical), "CRITICAL")
	assert.Contains(t, StatusIndicator(""), "UNKNOWN")
	assert.Contains(t, StatusIndicator("needs review"), "NEEDS REVIEW")
}
