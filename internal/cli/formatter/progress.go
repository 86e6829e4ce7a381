package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct, width = clampBar(pct, width)
	filled := int(pct * float64(width))

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderStreakBar renders days out of goal as blocks followed by "n/goal".
// Days beyond the goal fill the bar and are still counted in the label.
func RenderStreakBar(days, goal, width int) string {
	if goal <= 0 {
		goal = 1
	}
	pct, width := clampBar(float64(days)/float64(goal), width)
	filled := int(pct * float64(width))

	style := StyleDim
	switch {
	case days >= goal:
		style = StyleGreen
	case days > 0:
		style = StyleYellow
	}

	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("%s %d/%d", style.Render(bar), days, goal)
}

func clampBar(pct float64, width int) (float64, int) {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 2 {
		width = 2
	}
	return pct, width
}
