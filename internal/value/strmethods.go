package value

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Length returns the grapheme-cluster count of s (spec §4.4's Open
// Question is resolved in favor of grapheme semantics).
func Length(s string) int {
	return uniseg.GraphemeClusterCount(s)
}

// Contains, StartsWith, EndsWith implement the method-chain predicates
// of spec §4.3/§4.4. caseSensitive defaults to false per buffer
// configuration.
func Contains(s, sub string, caseSensitive bool) bool {
	if !caseSensitive {
		s, sub = strings.ToLower(s), strings.ToLower(sub)
	}
	return strings.Contains(s, sub)
}

func StartsWith(s, prefix string, caseSensitive bool) bool {
	if !caseSensitive {
		s, prefix = strings.ToLower(s), strings.ToLower(prefix)
	}
	return strings.HasPrefix(s, prefix)
}

func EndsWith(s, suffix string, caseSensitive bool) bool {
	if !caseSensitive {
		s, suffix = strings.ToLower(s), strings.ToLower(suffix)
	}
	return strings.HasSuffix(s, suffix)
}

// IndexOf returns the byte index of the first occurrence of sub in s,
// or -1 if absent (spec §4.3).
func IndexOf(s, sub string) int {
	return strings.Index(s, sub)
}

// Like implements SQL LIKE with % and _ wildcards, case-insensitively.
func Like(s, pattern string) bool {
	return likeMatch(strings.ToLower(s), strings.ToLower(pattern))
}

// likeMatch is a small recursive-descent matcher: % matches any run of
// runes (including empty), _ matches exactly one rune.
func likeMatch(s, pattern string) bool {
	sr, pr := []rune(s), []rune(pattern)
	return likeMatchRunes(sr, pr)
}

func likeMatchRunes(s, p []rune) bool {
	for len(p) > 0 {
		switch p[0] {
		case '%':
			// Collapse consecutive %.
			for len(p) > 0 && p[0] == '%' {
				p = p[1:]
			}
			if len(p) == 0 {
				return true
			}
			for i := 0; i <= len(s); i++ {
				if likeMatchRunes(s[i:], p) {
					return true
				}
			}
			return false
		case '_':
			if len(s) == 0 {
				return false
			}
			s, p = s[1:], p[1:]
		default:
			if len(s) == 0 || s[0] != p[0] {
				return false
			}
			s, p = s[1:], p[1:]
		}
	}
	return len(s) == 0
}
