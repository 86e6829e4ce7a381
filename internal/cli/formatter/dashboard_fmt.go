package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/firstdynamics/internal/app"
	"github.com/alexanderramin/firstdynamics/internal/domain"
	"github.com/alexanderramin/firstdynamics/internal/streak"
)

const streakBarWidth = 14

// FormatDashboard renders a dashboard view: header stats, streaks, systems
// and achievements. A failed view without fallback data renders the error.
func FormatDashboard(view app.DashboardView, now time.Time) string {
	var b strings.Builder

	if !view.Live {
		b.WriteString(StyleYellow.Render("⚠ Showing demo data, live data unavailable") + "\n")
		if view.Error != nil {
			b.WriteString(Dim("  "+*view.Error) + "\n")
		}
		b.WriteString("\n")
	}

	if view.Streaks == nil {
		return RenderBox("First Dynamics", strings.TrimRight(b.String(), "\n"))
	}

	b.WriteString(formatQuickStats(view, now))
	b.WriteString("\n\n")

	b.WriteString(Header("Streaks") + "\n")
	b.WriteString(formatStreakRows(*view.Streaks))
	b.WriteString("\n")

	b.WriteString(Header("Systems") + "\n")
	b.WriteString(formatSystems(view.Systems))
	b.WriteString("\n")

	b.WriteString(Header("Achievements") + "\n")
	if total := view.Totals.AchievementsTotal; total > 0 {
		ratio := float64(view.Totals.UnlockedCount) / float64(total)
		b.WriteString("  " + RenderProgress(ratio, streakBarWidth*2) + Dim(" unlocked") + "\n\n")
	}
	b.WriteString(formatAchievements(view.Achievements))

	return RenderBox("First Dynamics", strings.TrimRight(b.String(), "\n"))
}

func formatQuickStats(view app.DashboardView, now time.Time) string {
	parts := []string{
		StyleHeader.Render(fmt.Sprintf("🔥 %d", view.Totals.TotalStreakDays)) + Dim(" streak days"),
		StyleYellow.Render(fmt.Sprintf("🏆 %d/%d", view.Totals.UnlockedCount, view.Totals.AchievementsTotal)) + Dim(" achievements"),
	}
	if view.LastUpdated != nil {
		parts = append(parts, Dim("updated "+HumanTimestampFrom(*view.LastUpdated, now)))
	}
	return strings.Join(parts, Dim("  ·  "))
}

func formatStreakRows(s domain.StreakSummary) string {
	var b strings.Builder
	for _, c := range streak.Categories() {
		days := streak.Value(s, c.Key)
		fmt.Fprintf(&b, "  %s %-13s %s\n", c.Icon, c.Name, RenderStreakBar(days, c.Goal, streakBarWidth))
	}
	return b.String()
}

func formatSystems(systems []domain.SystemStatusEntry) string {
	if len(systems) == 0 {
		return Dim("  No systems") + "\n"
	}
	rows := make([][]string, 0, len(systems))
	for _, s := range systems {
		rows = append(rows, []string{
			Bold(domain.CoalesceStr(s.Name, "(untitled)")),
			StatusColor(s.Status).Render(s.Value.String()),
			Dim(s.Norm),
			StatusIndicator(s.Status),
		})
	}
	return RenderTable([]string{"SYSTEM", "VALUE", "NORM", "STATUS"}, rows)
}

func formatAchievements(achievements []domain.AchievementEntry) string {
	if len(achievements) == 0 {
		return Dim("  No achievements") + "\n"
	}
	rows := make([][]string, 0, len(achievements))
	for _, a := range achievements {
		name := domain.CoalesceStr(a.Name, "(untitled)")
		state := Dim("locked")
		switch {
		case a.IsUnlocked:
			name = Bold(name)
			state = StyleGreen.Render("unlocked ×" + fmt.Sprint(a.TimesEarned))
		case a.IsInProgress:
			state = StyleYellow.Render("in progress")
		default:
			name = Dim(name)
		}
		rows = append(rows, []string{
			domain.CoalesceStr(a.Emoji, "•") + " " + name,
			LevelColor(a.Level).Render(string(a.Level)),
			state,
		})
	}
	return RenderTable([]string{"ACHIEVEMENT", "LEVEL", "STATE"}, rows)
}

// FormatStreaks renders the streak summary on its own.
func FormatStreaks(resp *app.StreaksResponse) string {
	var b strings.Builder
	for _, c := range resp.Categories {
		today := Dim("·")
		if c.Today != nil {
			if *c.Today {
				today = StyleGreen.Render("✓")
			} else {
				today = StyleRed.Render("✗")
			}
		}
		fmt.Fprintf(&b, "%s %s %-13s %s\n", today, c.Icon, c.Name, RenderStreakBar(c.Days, c.Goal, streakBarWidth))
	}

	b.WriteString("\n")
	latest := "no dated entries"
	if resp.LatestDate != nil {
		latest = "latest " + resp.LatestDate.String()
	}
	b.WriteString(Dim(fmt.Sprintf("%s tracked, %s, %d total streak days",
		Plural(resp.Days, "day", "days"), latest, resp.Summary.Total())))

	return RenderBox("Streaks", b.String())
}
