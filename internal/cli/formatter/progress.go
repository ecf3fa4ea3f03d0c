package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a bar like [████░░░░]  45%. The bar is green above
// two thirds, yellow above one third and red below.
func RenderProgress(pct float64, width int) string {
	pct = min(max(pct, 0), 1)
	width = max(width, 2)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}
	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// RenderHours shows used against estimated hours, red once the estimate is
// exceeded.
func RenderHours(est, used float64, width int) string {
	if est <= 0 {
		return fmt.Sprintf("%s %s", StyleDim.Render(strings.Repeat(emptyBlock, max(width, 2))), FormatHours(used))
	}
	pct := used / est
	width = max(width, 2)
	filled := min(int(pct*float64(width)), width)
	style := StyleBlue
	if used > est {
		style = StyleRed
	}
	bar := style.Render(strings.Repeat(filledBlock, filled)) + StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
	return fmt.Sprintf("%s %s / %s", bar, FormatHours(used), FormatHours(est))
}
