// Package textutil lays out plain or styled text in fixed-width terminal columns. Widths are
// display widths, so ANSI escape sequences and wide characters are measured correctly.
package textutil

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Wrap splits text into lines no wider than width, breaking on whitespace. A single word wider
// than width gets a line of its own.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	var (
		lines         []string
		currentLine   []string
		currentLength int
	)
	for _, word := range words {
		wordWidth := lipgloss.Width(word)
		if currentLength+wordWidth+1 > width {
			if len(currentLine) > 0 {
				lines = append(lines, strings.Join(currentLine, " "))
				currentLine = []string{word}
				currentLength = wordWidth
			} else {
				lines = append(lines, word)
			}
		} else {
			currentLine = append(currentLine, word)
			if currentLength == 0 {
				currentLength = wordWidth
			} else {
				currentLength += wordWidth + 1
			}
		}
	}
	if len(currentLine) > 0 {
		lines = append(lines, strings.Join(currentLine, " "))
	}
	return lines
}

// PadRight appends spaces to s until it is width columns wide. Strings already at least that wide
// are returned unchanged.
func PadRight(s string, width int) string {
	if n := width - lipgloss.Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
