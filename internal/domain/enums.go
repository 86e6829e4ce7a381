package domain

import "strings"

type SystemStatus string

const (
	StatusOK       SystemStatus = "OK"
	StatusWarning  SystemStatus = "Warning"
	StatusCritical SystemStatus = "Critical"
)

// ParseSystemStatus maps the traffic-light glyphs and plain words used in the
// systems database onto a SystemStatus. Unknown text is returned unchanged.
func ParseSystemStatus(raw string) SystemStatus {
	s := strings.TrimSpace(raw)
	switch {
	case strings.Contains(s, "🟢"), strings.EqualFold(s, "ok"):
		return StatusOK
	case strings.Contains(s, "🟡"), strings.EqualFold(s, "warning"):
		return StatusWarning
	case strings.Contains(s, "🔴"), strings.EqualFold(s, "critical"):
		return StatusCritical
	default:
		return SystemStatus(s)
	}
}

// Known reports whether s is one of the three recognised statuses.
func (s SystemStatus) Known() bool {
	switch s {
	case StatusOK, StatusWarning, StatusCritical:
		return true
	}
	return false
}

type AchievementLevel string

const (
	LevelBronze   AchievementLevel = "Bronze"
	LevelSilver   AchievementLevel = "Silver"
	LevelGold     AchievementLevel = "Gold"
	LevelPlatinum AchievementLevel = "Platinum"
	LevelDiamond  AchievementLevel = "Diamond"
)

// AchievementLevels is the canonical level order, lowest first.
var AchievementLevels = []AchievementLevel{
	LevelBronze, LevelSilver, LevelGold, LevelPlatinum, LevelDiamond,
}

// ParseAchievementLevel matches text against the canonical levels ignoring
// case. Anything else passes through as-is.
func ParseAchievementLevel(text string) AchievementLevel {
	for _, l := range AchievementLevels {
		if strings.EqualFold(text, string(l)) {
			return l
		}
	}
	return AchievementLevel(text)
}

// Rank returns the 1-based position of l in AchievementLevels, or 0 when l is
// not a canonical level.
func (l AchievementLevel) Rank() int {
	for i, known := range AchievementLevels {
		if l == known {
			return i + 1
		}
	}
	return 0
}
