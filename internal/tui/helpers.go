package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// truncate shortens a string to max display cells with ellipsis
func truncate(s string, max int) string {
	if max <= 3 {
		return runewidth.Truncate(s, max, "")
	}
	return runewidth.Truncate(s, max, "...")
}

// padRight pads s with spaces to n display cells
func padRight(s string, n int) string {
	return runewidth.FillRight(s, n)
}

// repeat creates a string by repeating s n times
func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

// progressBar renders a fixed-width bar for a 0..1 fraction
func progressBar(frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac*float64(width) + 0.5)
	return repeat("█", filled) + repeat("░", width-filled)
}

// splitSubject splits "MATH Logarithms" into subject and text
func splitSubject(value string) (string, string, bool) {
	value = strings.TrimSpace(value)
	subject, text, ok := strings.Cut(value, " ")
	if !ok || strings.TrimSpace(text) == "" {
		return "", "", false
	}
	return strings.ToUpper(subject), strings.TrimSpace(text), true
}
