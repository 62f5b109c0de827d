package formatter

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/cycleboard/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		inner := titleRendered + "\n\n" + content
		return boxStyle.Render(inner)
	}

	return boxStyle.Render(content)
}

// HumanDate formats an optional calendar date, "--" when absent.
func HumanDate(t *time.Time) string {
	if t == nil {
		return "--"
	}
	return t.Format("Jan 2, 2006")
}

// HumanTimestamp formats an import time in local time.
func HumanTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatWeeks renders an effort in weeks with at most one decimal.
func FormatWeeks(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64) + "w"
}

// FormatCriteria renders active filters as key=value pairs, or "none".
func FormatCriteria(c domain.FilterCriteria) string {
	var parts []string
	if c.Area != "" {
		parts = append(parts, "area="+c.Area)
	}
	if len(c.Initiatives) > 0 {
		parts = append(parts, "initiatives="+strings.Join(c.Initiatives, ","))
	}
	if len(c.Stages) > 0 {
		parts = append(parts, "stages="+strings.Join(c.Stages, ","))
	}
	if len(c.Assignees) > 0 {
		parts = append(parts, "assignees="+strings.Join(c.Assignees, ","))
	}
	if c.Cycle != "" {
		parts = append(parts, "cycle="+c.Cycle)
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
