package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vietdv277/skymap/pkg/types"
)

// Box drawing characters
const (
	TopLeft     = "╭"
	TopRight    = "╮"
	BottomLeft  = "╰"
	BottomRight = "╯"
	Horizontal  = "─"
	Vertical    = "│"
	LeftT       = "├"
	RightT      = "┤"
	TopT        = "┬"
	BottomT     = "┴"
	Cross       = "┼"
)

// Color palette
const (
	ColorBorder     = "240"
	ColorHeader     = "252"
	ColorID         = "214"
	ColorName       = "81"
	ColorIP         = "252"
	ColorAZ         = "252"
	ColorWeb        = "39"
	ColorApp        = "141"
	ColorRunning    = "82"
	ColorStopped    = "208"
	ColorTerminated = "196"
	ColorPending    = "245"
	ColorMuted      = "240"
	ColorHint       = "245"
)

// Shared styles
var (
	BorderStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorBorder))
	HeaderStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorHeader))
	IDStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorID))
	NameStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorName))
	IPStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorIP))
	AZStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAZ))
	WebStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorWeb))
	AppStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorApp))
	RunningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorRunning))
	StoppedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorStopped))
	TerminatedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTerminated))
	PendingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPending))
	MutedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted))
	HintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorHint))
	ErrorStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorTerminated))
)

// InstanceStateStyle colors an instance state: running green, stopped
// orange, terminated red, anything else grey
func InstanceStateStyle(state types.InstanceState) lipgloss.Style {
	switch state {
	case types.InstanceStateRunning:
		return RunningStyle
	case types.InstanceStateStopped:
		return StoppedStyle
	case types.InstanceStateTerminated:
		return TerminatedStyle
	default:
		return PendingStyle
	}
}

// stateIndicator returns the glyph drawn in front of a state
func stateIndicator(state types.InstanceState) string {
	switch state {
	case types.InstanceStateRunning:
		return "●"
	case types.InstanceStatePending, types.InstanceStateStopping, types.InstanceStateShuttingDown:
		return "◐"
	default:
		return "○"
	}
}

// balancerStyle colors a load balancer state
func balancerStyle(state string) lipgloss.Style {
	switch state {
	case "active":
		return RunningStyle
	case "failed":
		return TerminatedStyle
	case "active_impaired":
		return StoppedStyle
	default:
		return PendingStyle
	}
}

// tierStyle colors a tier heading
func tierStyle(tier types.Tier) lipgloss.Style {
	if tier == types.TierApp {
		return AppStyle
	}
	return WebStyle
}

// padRight pads a string to the specified display width using runewidth
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "...")
	}
	return s + strings.Repeat(" ", width-sw)
}
