// Package term decides whether console output is colored and holds the
// palette the logger and the banner draw from.
//
// The palette is keyed by log level rather than by color name. [Configure]
// installs it once during startup; with colors off every entry is empty,
// so concatenating an entry is a no-op.
package term

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/backmassage/mediamatch/internal/config"
)

// Palette holds one ANSI sequence per log level, the banner color and the
// reset sequence.
type Palette struct {
	Info    string
	Success string
	Warn    string
	Error   string
	Match   string
	Debug   string
	Banner  string
	Reset   string
}

// ansi is the palette used when colors are on.
var ansi = Palette{
	Info:    "\033[1;94m", // bright blue
	Success: "\033[1;92m", // bright green
	Warn:    "\033[1;93m", // bright yellow
	Error:   "\033[1;91m", // bright red
	Match:   "\033[1;95m", // bright magenta
	Debug:   "\033[1;96m", // bright cyan
	Banner:  "\033[1;95m",
	Reset:   "\033[0m",
}

// Colors is the active palette. It is the zero Palette until Configure
// enables colors.
var Colors Palette

// Configure installs the palette for mode, detecting the terminal on
// stdout when mode is auto. It is called from logging.NewLogger.
func Configure(mode config.ColorMode) {
	if Wanted(mode, os.Stdout, os.Getenv) {
		Colors = ansi
	} else {
		Colors = Palette{}
	}
}

// Enabled reports whether colors are currently on.
func Enabled() bool { return Colors.Reset != "" }

// Paint wraps s in color and the reset sequence. An empty color returns s
// unchanged.
func Paint(color, s string) string {
	if color == "" {
		return s
	}
	return color + s + Colors.Reset
}

// Wanted reports whether output to f should be colored under mode. In auto
// mode f must be a terminal, NO_COLOR (https://no-color.org) must be unset
// and TERM must not be "dumb".
func Wanted(mode config.ColorMode, f *os.File, getenv func(string) string) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	if getenv("NO_COLOR") != "" || strings.EqualFold(getenv("TERM"), "dumb") {
		return false
	}
	return IsTerminal(f)
}

// IsTerminal reports whether f is attached to a TTY, including Cygwin/MSYS
// pseudo terminals.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
