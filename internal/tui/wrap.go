package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// wrapText breaks s into lines no wider than width display cells.
// Words longer than width are split.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	var lines []string
	var line strings.Builder
	lineWidth := 0
	flush := func() {
		lines = append(lines, line.String())
		line.Reset()
		lineWidth = 0
	}
	for _, word := range strings.Fields(s) {
		w := runewidth.StringWidth(word)
		if lineWidth > 0 && lineWidth+1+w > width {
			flush()
		}
		if lineWidth > 0 {
			line.WriteByte(' ')
			lineWidth++
		}
		for w > width-lineWidth {
			head := runewidth.Truncate(word, width-lineWidth, "")
			if head == "" {
				if lineWidth > 0 {
					flush()
					continue
				}
				_, size := utf8.DecodeRuneInString(word)
				head = word[:size]
			}
			line.WriteString(head)
			flush()
			word = strings.TrimPrefix(word, head)
			w = runewidth.StringWidth(word)
		}
		line.WriteString(word)
		lineWidth += w
	}
	if lineWidth > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}
