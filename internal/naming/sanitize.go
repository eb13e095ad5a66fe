package naming

import "strings"

// reservedReplacer maps every character a catalog frontend cannot place in a
// filename to an underscore.
var reservedReplacer = strings.NewReplacer(
	":", "_",
	"'", "_",
	"/", "_",
	`\`, "_",
	"?", "_",
	"*", "_",
	`"`, "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SanitizeTitle replaces the reserved characters : ' / \ ? * " < > | with
// underscores, the way catalog frontends name their media files. The result
// contains none of those characters, so applying it twice is a no-op.
func SanitizeTitle(title string) string {
	return reservedReplacer.Replace(title)
}
