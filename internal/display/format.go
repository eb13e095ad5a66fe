package display

import (
	"fmt"
)

// FormatPercent returns part/total as a percentage with one decimal
// (e.g. "87.5%"). A zero total yields "0.0%".
func FormatPercent(part, total int) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
}

// FormatRatio returns "part/total (pct)", e.g. "7/8 (87.5%)".
func FormatRatio(part, total int) string {
	return fmt.Sprintf("%d/%d (%s)", part, total, FormatPercent(part, total))
}

// Plural returns word with an "s" appended unless n is 1 (e.g. "3 files").
func Plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
