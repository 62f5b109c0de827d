package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░]  45%.
// The bar is colored based on percentage: green >=66, yellow 33-65, red <33.
func RenderProgress(pct int, width int) string {
	return fmt.Sprintf("[%s] %3d%%", RenderCompactBar(pct, width), clampPct(pct))
}

// RenderCompactBar renders only the colored blocks, for table cells.
func RenderCompactBar(pct int, width int) string {
	pct = clampPct(pct)
	if width < 2 {
		width = 2
	}

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 33 {
		style = StyleRed
	} else if pct < 66 {
		style = StyleYellow
	}
	return style.Render(bar)
}

func clampPct(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
