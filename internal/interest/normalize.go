// Package interest scores transcripts against the interest taxonomy.
package interest

import "strings"

// Normalize lowercases text and reduces it to runs of [a-z0-9'+#] separated
// by single spaces. Keywords and transcripts both pass through it, so lookups
// compare normalized forms only.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	pendingSpace := false
	for _, r := range strings.ToLower(text) {
		if !isKeptRune(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}

	return b.String()
}

// Tokenize normalizes text and splits it into tokens
func Tokenize(text string) []string {
	return strings.Fields(Normalize(text))
}

func isKeptRune(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '\'' || r == '+' || r == '#'
}

// tokensBefore counts the tokens of normalized text that precede byte offset
func tokensBefore(normalized string, offset int) int {
	prefix := normalized[:offset]
	if prefix == "" {
		return 0
	}
	n := strings.Count(prefix, " ")
	if !strings.HasSuffix(prefix, " ") {
		n++
	}
	return n
}
