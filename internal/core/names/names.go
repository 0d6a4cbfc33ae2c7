// Package names compares player names across romanizations.
//
// Comparison happens on a folded form: NFKC normalization, Unicode case
// folding, and removal of the separators that romanization schemes disagree
// on ("Kim Min-jun", "Kim Minjun" and "KIM MIN JUN" fold to the same key).
package names

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

func isSeparator(r rune) bool {
	switch r {
	case '-', '\'', '.', '_', '·', '‧', '・', '’', '‘', '`':
		return true
	}
	return unicode.IsSpace(r) || unicode.Is(unicode.Pd, r)
}

// Fold returns the comparison key for a name.
func Fold(s string) string {
	folded := cases.Fold().String(norm.NFKC.String(s))
	return strings.Map(func(r rune) rune {
		if isSeparator(r) {
			return -1
		}
		return r
	}, folded)
}

// Lower is the case-insensitive form used for substring search; separators are kept.
func Lower(s string) string {
	return cases.Fold().String(norm.NFKC.String(s))
}

// EqualFold reports whether two names fold to the same key.
func EqualFold(a, b string) bool {
	return Fold(a) == Fold(b)
}

// HasPrefixEither reports whether the folded form of a starts with the folded
// form of b or the other way round. A strict prefix shorter than minRunes does
// not count; equal keys always match.
func HasPrefixEither(a, b string, minRunes int) bool {
	fa, fb := Fold(a), Fold(b)
	if fa == "" || fb == "" {
		return false
	}
	if fa == fb {
		return true
	}
	shorter, longer := fa, fb
	if utf8.RuneCountInString(fb) < utf8.RuneCountInString(fa) {
		shorter, longer = fb, fa
	}
	if utf8.RuneCountInString(shorter) < minRunes {
		return false
	}
	return strings.HasPrefix(longer, shorter)
}

// FirstPrefixMatch returns the first pair (a from left, b from right) that
// satisfies HasPrefixEither, scanning left in order.
func FirstPrefixMatch(left, right []string, minRunes int) (string, string, bool) {
	for _, a := range left {
		for _, b := range right {
			if HasPrefixEither(a, b, minRunes) {
				return a, b, true
			}
		}
	}
	return "", "", false
}
