package testutil

import (
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/alexanderramin/firstdynamics/internal/domain"
	"github.com/alexanderramin/firstdynamics/internal/normalize"
	"github.com/alexanderramin/firstdynamics/internal/notion"
	"github.com/google/uuid"
)

var testIDCounter atomic.Int64

func nextID(prefix string) string {
	return fmt.Sprintf("%s-%03d", prefix, testIDCounter.Add(1))
}

// Tracker options
type TrackerOption func(*domain.DailyTrackerEntry)

func WithTrackerID(id string) TrackerOption {
	return func(e *domain.DailyTrackerEntry) {
		e.ID = id
	}
}

func WithDeepWork(done bool) TrackerOption {
	return func(e *domain.DailyTrackerEntry) {
		e.DeepWorkDone = done
	}
}

func WithCleanEating(score int) TrackerOption {
	return func(e *domain.DailyTrackerEntry) {
		e.CleanEatingScore = score
	}
}

func WithBedtime(ok bool) TrackerOption {
	return func(e *domain.DailyTrackerEntry) {
		e.BedtimeCompliant = ok
	}
}

func WithMovement(done bool) TrackerOption {
	return func(e *domain.DailyTrackerEntry) {
		e.MorningMovement = done
	}
}

// WithAllHabits marks every habit of the day as done.
func WithAllHabits() TrackerOption {
	return func(e *domain.DailyTrackerEntry) {
		e.DeepWorkDone = true
		e.CleanEatingScore = 10
		e.BedtimeCompliant = true
		e.MorningMovement = true
	}
}

// NewTrackerEntry returns a day with no habit done.
func NewTrackerEntry(date domain.Date, opts ...TrackerOption) domain.DailyTrackerEntry {
	e := domain.DailyTrackerEntry{
		ID:   nextID("day"),
		Date: date,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Achievement options
type AchievementOption func(*domain.AchievementEntry)

func WithLevel(l domain.AchievementLevel) AchievementOption {
	return func(a *domain.AchievementEntry) {
		a.Level = l
	}
}

func WithCategory(c string) AchievementOption {
	return func(a *domain.AchievementEntry) {
		a.Category = c
	}
}

// WithUnlocked marks the achievement earned n times.
func WithUnlocked(n int) AchievementOption {
	return func(a *domain.AchievementEntry) {
		a.IsUnlocked = true
		a.TimesEarned = n
	}
}

func WithInProgress() AchievementOption {
	return func(a *domain.AchievementEntry) {
		a.IsInProgress = true
	}
}

func NewTestAchievement(name string, opts ...AchievementOption) domain.AchievementEntry {
	a := domain.AchievementEntry{
		ID:           uuid.New().String(),
		Name:         name,
		Category:     "Deep Work",
		Level:        domain.LevelBronze,
		Emoji:        "🔥",
		RequiredDays: 1,
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// Notion page builders. They render entries back into the property shapes
// the default schema reads, for tests that go through the HTTP client.

func TrackerPage(e domain.DailyTrackerEntry) notion.Page {
	f := normalize.DefaultSchema().Tracker
	props := map[string]any{
		f.DeepWorkDone:     checkbox(e.DeepWorkDone),
		f.CleanEatingScore: number(float64(e.CleanEatingScore)),
		f.BedtimeCompliant: checkbox(e.BedtimeCompliant),
		f.MorningMovement:  checkbox(e.MorningMovement),
	}
	if !e.Date.IsZero() {
		props[f.Date] = map[string]any{"type": "date", "date": map[string]any{"start": e.Date.String()}}
	}
	return newPage(e.ID, props)
}

func AchievementPage(a domain.AchievementEntry) notion.Page {
	f := normalize.DefaultSchema().Achievements
	status := "Не начато"
	switch {
	case a.IsUnlocked:
		status = f.UnlockedMarker
	case a.IsInProgress:
		status = f.InProgressMarker
	}
	props := map[string]any{
		f.Name:         title(a.Name),
		f.Category:     selectOf(a.Category),
		f.Level:        selectOf(string(a.Level)),
		f.Description:  richText(a.Description),
		f.Emoji:        richText(a.Emoji),
		f.RequiredDays: number(float64(a.RequiredDays)),
		f.TimesEarned:  map[string]any{"type": "rollup", "rollup": map[string]any{"type": "number", "number": a.TimesEarned}},
		f.Status:       selectOf(status),
	}
	return newPage(a.ID, props)
}

func SystemPage(s domain.SystemStatusEntry) notion.Page {
	f := normalize.DefaultSchema().Systems
	value := map[string]any{"type": "string", "string": s.Value.Text}
	if s.Value.IsNumber() {
		value = map[string]any{"type": "number", "number": *s.Value.Number}
	}
	props := map[string]any{
		f.Name:   title(s.Name),
		f.Value:  map[string]any{"type": "formula", "formula": value},
		f.Norm:   richText(s.Norm),
		f.Status: map[string]any{"type": "formula", "formula": map[string]any{"type": "string", "string": string(s.Status)}},
	}
	return newPage(s.ID, props)
}

// QueryResponseJSON encodes pages as a Notion query response body.
func QueryResponseJSON(pages ...notion.Page) []byte {
	if pages == nil {
		pages = []notion.Page{}
	}
	data, err := json.Marshal(notion.QueryResponse{Object: "list", Results: pages})
	if err != nil {
		panic(err)
	}
	return data
}

func newPage(id string, props map[string]any) notion.Page {
	if id == "" {
		id = uuid.New().String()
	}
	p := notion.Page{Object: "page", ID: id, Properties: notion.Properties{}}
	for name, v := range props {
		raw, err := json.Marshal(v)
		if err != nil {
			panic(err)
		}
		p.Properties[name] = raw
	}
	return p
}

func textRuns(s string) []map[string]any {
	if s == "" {
		return []map[string]any{}
	}
	return []map[string]any{{"type": "text", "plain_text": s}}
}

func title(s string) map[string]any {
	return map[string]any{"type": "title", "title": textRuns(s)}
}

func richText(s string) map[string]any {
	return map[string]any{"type": "rich_text", "rich_text": textRuns(s)}
}

func selectOf(name string) map[string]any {
	if name == "" {
		return map[string]any{"type": "select", "select": nil}
	}
	return map[string]any{"type": "select", "select": map[string]any{"name": name}}
}

func number(n float64) map[string]any {
	return map[string]any{"type": "number", "number": n}
}

func checkbox(b bool) map[string]any {
	return map[string]any{"type": "checkbox", "checkbox": b}
}
