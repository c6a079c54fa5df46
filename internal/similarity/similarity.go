// Package similarity provides normalized fuzzy string matching for titles.
package similarity

import (
	"strings"
	"unicode"
)

// NormalizeTitle lowercases, strips everything that is not a letter, digit,
// or space, and collapses runs of whitespace to single spaces.
func NormalizeTitle(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Ratio computes the Ratcliff/Obershelp similarity between two strings:
// 2*M / (len(a)+len(b)) where M is the total length of the longest matching
// blocks found recursively. Block matching depends on argument order, so the
// arguments are put in canonical order first (shorter string, then
// lexicographically smaller, as the left operand) to keep the ratio
// symmetric. Bounded in [0,1]; two empty strings compare as 1.0.
func Ratio(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) || (len(ra) == len(rb) && a > b) {
		ra, rb = rb, ra
	}
	matched := matchingBlocks(ra, rb)
	return 2.0 * float64(matched) / float64(len(ra)+len(rb))
}

// TitleRatio normalizes both titles and returns their Ratio.
func TitleRatio(a, b string) float64 {
	return Ratio(NormalizeTitle(a), NormalizeTitle(b))
}

// matchingBlocks returns the total length of matching blocks: the longest
// common substring, plus (recursively) the matches to its left and right.
func matchingBlocks(a, b []rune) int {
	ai, bi, size := longestMatch(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += matchingBlocks(a[:ai], b[:bi])
	total += matchingBlocks(a[ai+size:], b[bi+size:])
	return total
}

// longestMatch finds the longest common substring of a and b, preferring the
// earliest occurrence in a, then in b (difflib tie-breaking).
func longestMatch(a, b []rune) (bestA, bestB, bestSize int) {
	if len(a) == 0 || len(b) == 0 {
		return 0, 0, 0
	}

	// lengths[j] = length of common suffix ending at a[i], b[j] for the
	// current row; prev holds the previous row.
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)

	for i := 0; i < len(a); i++ {
		for j := 0; j < len(b); j++ {
			if a[i] == b[j] {
				cur[j+1] = prev[j] + 1
				if cur[j+1] > bestSize {
					bestSize = cur[j+1]
					bestA = i - bestSize + 1
					bestB = j - bestSize + 1
				}
			} else {
				cur[j+1] = 0
			}
		}
		prev, cur = cur, prev
	}

	return bestA, bestB, bestSize
}
