package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/firstdynamics/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusColor returns the style for a system status. Unknown statuses are
// dimmed.
func StatusColor(s domain.SystemStatus) lipgloss.Style {
	switch s {
	case domain.StatusOK:
		return StyleGreen
	case domain.StatusWarning:
		return StyleYellow
	case domain.StatusCritical:
		return StyleRed
	default:
		return StyleDim
	}
}

// StatusIndicator returns a colored indicator such as "● OK".
func StatusIndicator(s domain.SystemStatus) string {
	label := strings.ToUpper(string(s))
	if label == "" {
		label = "UNKNOWN"
	}
	return StatusColor(s).Render("● " + label)
}

// LevelColor maps achievement levels onto the palette, lowest to highest.
func LevelColor(l domain.AchievementLevel) lipgloss.Style {
	switch l {
	case domain.LevelBronze:
		return StyleHeader
	case domain.LevelSilver:
		return StyleFg
	case domain.LevelGold:
		return StyleYellow
	case domain.LevelPlatinum:
		return StyleBlue
	case domain.LevelDiamond:
		return StylePurple
	default:
		return StyleDim
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
