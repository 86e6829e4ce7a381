// Package normalize turns Notion pages into dashboard records. Every function
// here is total: missing or malformed properties produce default values,
// never errors.
package normalize

import (
	"math"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"

	"github.com/alexanderramin/firstdynamics/internal/domain"
	"github.com/alexanderramin/firstdynamics/internal/notion"
)

// Normalizer shapes pages using a fixed Schema.
type Normalizer struct {
	schema Schema
	logger *log.Logger
}

type Option func(*Normalizer)

// WithLogger reports records that map cleanly but break a domain rule, such
// as an unlocked achievement earned zero times. The record is still returned.
func WithLogger(logger *log.Logger) Option {
	return func(n *Normalizer) { n.logger = logger }
}

func New(schema Schema, opts ...Option) *Normalizer {
	n := &Normalizer{schema: schema}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Schema returns the property names the normalizer reads.
func (n *Normalizer) Schema() Schema {
	return n.schema
}

func (n *Normalizer) SystemStatus(page notion.Page) domain.SystemStatusEntry {
	f := n.schema.Systems
	p := page.Properties

	value := p.Formula(f.Value)
	return domain.SystemStatusEntry{
		ID:     page.ID,
		Name:   p.Title(f.Name),
		Value:  metricFromFormula(value),
		Norm:   p.RichText(f.Norm),
		Status: domain.ParseSystemStatus(p.Formula(f.Status).Text),
	}
}

func (n *Normalizer) Achievement(page notion.Page) domain.AchievementEntry {
	f := n.schema.Achievements
	p := page.Properties

	status := p.Select(f.Status)
	entry := domain.AchievementEntry{
		ID:           page.ID,
		Name:         p.Title(f.Name),
		Category:     p.Select(f.Category),
		Level:        CleanLevel(p.Select(f.Level)),
		Description:  p.RichText(f.Description),
		Emoji:        p.RichText(f.Emoji),
		RequiredDays: nonNegativeInt(p.Number(f.RequiredDays)),
		TimesEarned:  nonNegativeInt(p.RollupNumber(f.TimesEarned)),
		IsUnlocked:   containsMarker(status, f.UnlockedMarker),
		IsInProgress: containsMarker(status, f.InProgressMarker),
		FirstEarned:  p.RollupDate(f.FirstEarned),
		LastEarned:   p.RollupDate(f.LastEarned),
	}
	if err := entry.Validate(); err != nil && n.logger != nil {
		n.logger.Warn("achievement record is inconsistent", "id", page.ID, "err", err)
	}
	return entry
}

func (n *Normalizer) Tracker(page notion.Page) domain.DailyTrackerEntry {
	f := n.schema.Tracker
	p := page.Properties

	entry := domain.DailyTrackerEntry{
		ID:               page.ID,
		DeepWorkDone:     p.Checkbox(f.DeepWorkDone),
		CleanEatingScore: nonNegativeInt(p.Number(f.CleanEatingScore)),
		BedtimeCompliant: p.Checkbox(f.BedtimeCompliant),
		MorningMovement:  p.Checkbox(f.MorningMovement),
	}
	if start := p.DateStart(f.Date); start != nil {
		// An unparseable date leaves the zero Date, which sorts last.
		if d, err := domain.ParseDate(*start); err == nil {
			entry.Date = d
		}
	}
	return entry
}

func (n *Normalizer) SystemStatuses(pages []notion.Page) []domain.SystemStatusEntry {
	out := make([]domain.SystemStatusEntry, 0, len(pages))
	for _, pg := range pages {
		out = append(out, n.SystemStatus(pg))
	}
	return out
}

func (n *Normalizer) Achievements(pages []notion.Page) []domain.AchievementEntry {
	out := make([]domain.AchievementEntry, 0, len(pages))
	for _, pg := range pages {
		out = append(out, n.Achievement(pg))
	}
	return out
}

func (n *Normalizer) TrackerEntries(pages []notion.Page) []domain.DailyTrackerEntry {
	out := make([]domain.DailyTrackerEntry, 0, len(pages))
	for _, pg := range pages {
		out = append(out, n.Tracker(pg))
	}
	return out
}

// CleanLevel strips decorative glyphs and whitespace from both ends of a
// level label and maps the rest onto a canonical level. Labels that still do
// not match are returned stripped but otherwise uninterpreted.
func CleanLevel(raw string) domain.AchievementLevel {
	trimmed := strings.TrimFunc(raw, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return domain.ParseAchievementLevel(trimmed)
}

func metricFromFormula(v notion.FormulaValue) domain.MetricValue {
	if v.Number != nil {
		return domain.NumberValue(*v.Number)
	}
	return domain.TextValue(v.Text)
}

func containsMarker(status, marker string) bool {
	return marker != "" && strings.Contains(status, marker)
}

// nonNegativeInt floors a Notion number into [0, MaxInt32]. NaN and
// negatives become 0; huge values and +Inf saturate.
func nonNegativeInt(f float64) int {
	switch {
	case math.IsNaN(f) || f < 0:
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	}
	return int(math.Floor(f))
}
