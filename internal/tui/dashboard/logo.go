package dashboard

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// logoLines is the Paneboard wordmark shown on the empty board.
var logoLines = strings.Split(strings.TrimSpace(logoASCII), "\n")

const logoASCII = `
████   ███  █   █ █████ ████   ███   ███  ████  ████
█   █ █   █ ██  █ █     █   █ █   █ █   █ █   █ █   █
█   █ █   █ █ █ █ █     █   █ █   █ █   █ █   █ █   █
████  █████ █  ██ ████  ████  █   █ █████ ████  █   █
█     █   █ █   █ █     █   █ █   █ █   █ █ █   █   █
█     █   █ █   █ █     █   █ █   █ █   █ █  █  █   █
█     █   █ █   █ █████ ████   ███  █   █ █   █ ████
`

const logoCompact = "PANEBOARD"

// logoBlock returns the wordmark, falling back to the compact label
// when the full block does not fit.
func logoBlock(width int) string {
	if width < logoWidth() {
		return logoCompact
	}
	return strings.Join(logoLines, "\n")
}

func logoWidth() int {
	maxWidth := 0
	for _, line := range logoLines {
		if w := runewidth.StringWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	return maxWidth
}
