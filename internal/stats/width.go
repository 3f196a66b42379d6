package stats

import (
	"os"

	"golang.org/x/term"
)

const terminalWidthBackup = 80

// TerminalWidth reports the stdout width, falling back to 80 columns.
func TerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}
