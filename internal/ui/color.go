package ui

import (
	"os"
	"sync"

	"github.com/muesli/termenv"
)

var (
	colorOnce    sync.Once
	colorEnabled bool
)

// ShouldUseColor reports whether styled output is appropriate: stdout is a
// terminal with color support and NO_COLOR is unset.
func ShouldUseColor() bool {
	colorOnce.Do(func() {
		if os.Getenv("NO_COLOR") != "" {
			colorEnabled = false
			return
		}
		out := termenv.NewOutput(os.Stdout)
		colorEnabled = out.Profile != termenv.Ascii
	})
	return colorEnabled
}
