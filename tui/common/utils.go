package common

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// TruncateLines keeps the first maxLines lines of s, each cut to width
// cells. Cuts are marked with an ellipsis.
func TruncateLines(s string, width, maxLines int) string {
	if width <= 0 || maxLines <= 0 {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(s), "\n")
	clipped := len(lines) > maxLines
	if clipped {
		lines = lines[:maxLines]
	}
	for i, ln := range lines {
		lines[i] = ansi.Truncate(ln, width, "…")
	}
	if clipped {
		last := len(lines) - 1
		if ansi.StringWidth(lines[last]) >= width {
			lines[last] = ansi.Truncate(lines[last], width-1, "") + "…"
		} else {
			lines[last] += "…"
		}
	}
	return strings.Join(lines, "\n")
}

func joinDot(parts []string) string {
	return strings.Join(parts, " • ")
}
