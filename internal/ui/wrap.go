package ui

import (
	"strings"

	"github.com/mitchellh/go-wordwrap"
)

// WrapText breaks text on word boundaries so no line exceeds width columns.
// Words longer than width are left whole. Existing line breaks are kept.
func WrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = wordwrap.WrapString(strings.TrimRight(line, " \t"), uint(width))
	}
	return strings.Join(lines, "\n")
}
