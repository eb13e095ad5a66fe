package match

// Similarity scores are indel based: with L the length of the longest common
// subsequence, ratio(a, b) = 200*L / (len(a)+len(b)). Lengths count runes.

// Ratio returns the indel similarity of a and b on a 0-100 scale. Two empty
// strings are identical (100); one empty string scores 0.
func Ratio(a, b string) float64 {
	return ratioRunes([]rune(a), []rune(b))
}

// PartialRatio slides the shorter string over the longer one, including
// windows that hang off either end, and returns the best [Ratio] found.
func PartialRatio(a, b string) float64 {
	return partialRatioRunes([]rune(a), []rune(b))
}

func ratioRunes(a, b []rune) float64 {
	total := len(a) + len(b)
	if total == 0 {
		return 100
	}
	return 200 * float64(lcsLength(a, b)) / float64(total)
}

func partialRatioRunes(a, b []rune) float64 {
	short, long := a, b
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		if len(long) == 0 {
			return 100
		}
		return 0
	}

	// A window can only improve on the others when its newest character
	// occurs in short; checking that skips most windows.
	inShort := make(map[rune]bool, len(short))
	for _, r := range short {
		inShort[r] = true
	}

	n, m := len(short), len(long)
	best := 0.0
	consider := func(window []rune) bool {
		if s := ratioRunes(short, window); s > best {
			best = s
		}
		return best == 100
	}

	// Windows hanging off the left end: long[:i].
	for i := 1; i < n; i++ {
		if inShort[long[i-1]] && consider(long[:i]) {
			return best
		}
	}
	// Full-width windows.
	for i := 0; i+n <= m; i++ {
		if inShort[long[i+n-1]] && consider(long[i:i+n]) {
			return best
		}
	}
	// Windows hanging off the right end: long[i:].
	for i := m - n + 1; i < m; i++ {
		if inShort[long[i]] && consider(long[i:]) {
			return best
		}
	}
	return best
}

// lcsLength returns the length of the longest common subsequence of a and
// b using two rolling rows.
func lcsLength(a, b []rune) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			switch {
			case a[i-1] == b[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}
