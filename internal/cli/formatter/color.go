package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/cycleboard/internal/domain"
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

// Predefined lipgloss styles.
var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// StatusStyle returns the style for a release item status.
func StatusStyle(s domain.ReleaseStatus) lipgloss.Style {
	switch s {
	case domain.StatusDone:
		return StyleGreen
	case domain.StatusInProgress:
		return StyleYellow
	case domain.StatusTodo:
		return StyleBlue
	case domain.StatusCancelled, domain.StatusPostponed:
		return StyleRed
	default:
		return StyleDim
	}
}

// StatusIndicator returns a colored status pill such as "● IN PROGRESS".
func StatusIndicator(s domain.ReleaseStatus) string {
	switch s {
	case domain.StatusDone:
		return StyleGreen.Render("✔ DONE")
	case domain.StatusInProgress:
		return StyleYellow.Render("● IN PROGRESS")
	case domain.StatusTodo:
		return StyleBlue.Render("○ TODO")
	case domain.StatusCancelled:
		return StyleRed.Render("✖ CANCELLED")
	case domain.StatusPostponed:
		return StyleRed.Render("⏸ POSTPONED")
	case domain.StatusReplanned:
		return StyleDim.Render("↻ REPLANNED")
	default:
		return StyleDim.Render("? UNKNOWN")
	}
}

// CycleStateIndicator returns a colored cycle state label.
func CycleStateIndicator(s domain.CycleState) string {
	switch s {
	case domain.CycleActive:
		return StyleGreen.Render("● active")
	case domain.CycleFuture:
		return StyleBlue.Render("○ future")
	case domain.CycleClosed:
		return StyleDim.Render("✔ closed")
	default:
		return StyleDim.Render("--")
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", len(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
