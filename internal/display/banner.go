// Package display renders console-only output: the startup banner and small
// human-readable formatters shared by the report and the CLI.
package display

import (
	"fmt"
	"io"

	"github.com/backmassage/mediamatch/internal/term"
)

// PrintBanner writes the ASCII art banner to w.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Colors.Banner)
	fmt.Fprint(w, ` __  __          _ _       __  __       _       _
|  \/  | ___  __| (_) __ _|  \/  | __ _| |_ ___| |__
| |\/| |/ _ \/ _`+"`"+` | |/ _`+"`"+` | |\/| |/ _`+"`"+` | __/ __| '_ \
| |  | |  __/ (_| | | (_| | |  | | (_| | || (__| | | |
|_|  |_|\___|\__,_|_|\__,_|_|  |_|\__,_|\__\___|_| |_|
`)
	if term.Enabled() {
		fmt.Fprintln(w, term.Colors.Reset)
	}
}
