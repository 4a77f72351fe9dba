package collections

import "strings"

// stopwords are function words and self-referential phrasing ("before I
// buy ...") excluded from token sets.
var stopwords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "to": true, "in": true, "on": true, "for": true,
	"with": true, "at": true, "by": true, "from": true, "about": true,
	"is": true, "are": true, "was": true, "be": true, "do": true,
	"does": true, "have": true, "has": true, "can": true, "should": true,
	"i": true, "my": true, "me": true, "we": true, "our": true,
	"you": true, "your": true, "it": true, "its": true, "this": true,
	"that": true, "some": true, "any": true, "new": true, "get": true,
	"need": true, "want": true, "buy": true, "buying": true,
	"purchase": true, "before": true, "already": true, "own": true,
}

// Tokenize splits text into lowercase tokens. Any run of characters
// outside [a-z0-9] is a separator.
func Tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		if b.Len() > 0 {
			tokens = append(tokens, b.String())
			b.Reset()
		}
	}
	if b.Len() > 0 {
		tokens = append(tokens, b.String())
	}
	return tokens
}

// NormalizeToken lowercases and naively singularizes a token. The suffix
// rules are ordered and the first match wins. This is a heuristic, not a
// stemmer: irregular plurals come out wrong and that is accepted.
func NormalizeToken(token string) string {
	t := strings.ToLower(strings.TrimSpace(token))
	switch {
	case strings.HasSuffix(t, "ies") && len(t) > 4:
		return t[:len(t)-3] + "y"
	case strings.HasSuffix(t, "es") && len(t) > 4:
		return t[:len(t)-2]
	case strings.HasSuffix(t, "s") && len(t) > 3:
		return t[:len(t)-1]
	}
	return t
}

// TokenSet tokenizes and normalizes text into a set, dropping stopwords
// and tokens shorter than three characters.
func TokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range Tokenize(text) {
		norm := NormalizeToken(tok)
		if len(norm) < 3 || stopwords[norm] || stopwords[tok] {
			continue
		}
		set[norm] = true
	}
	return set
}

// Intersects reports whether two token sets share at least one token.
func Intersects(a, b map[string]bool) bool {
	if len(b) < len(a) {
		a, b = b, a
	}
	for t := range a {
		if b[t] {
			return true
		}
	}
	return false
}

// NormalizeText trims and lowercases whole-string text for equality checks.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
