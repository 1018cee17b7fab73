package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// wrapTokens lays scramble tokens out in lines no wider than width,
// never splitting a token. A width <= 0 keeps a single line.
func wrapTokens(tokens []string, width int) []string {
	if len(tokens) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(tokens, " ")}
	}
	var lines []string
	var line strings.Builder
	lineWidth := 0
	for _, tok := range tokens {
		w := runewidth.StringWidth(tok)
		if lineWidth > 0 && lineWidth+1+w > width {
			lines = append(lines, line.String())
			line.Reset()
			lineWidth = 0
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		line.WriteString(tok)
		lineWidth += w
	}
	lines = append(lines, line.String())
	return lines
}
