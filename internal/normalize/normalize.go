package normalize

import (
	"regexp"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/unicode/norm"
)

var reNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// memo caches normalized forms. Name is called for every collection line and
// for every required card of every deck on each evaluation, and the input
// vocabulary (card names) is small and highly repetitive.
var memo, _ = lru.New[string, string](8192)

// stripDiacritics removes combining marks after NFD decomposition.
func stripDiacritics(s string) string {
	decomp := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomp))
	for _, r := range decomp {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Name canonicalizes a free-text card name for equality comparisons: it
// lowercases, folds width/compatibility forms (NFKC), removes diacritics
// (é -> e, û -> u) and strips every rune outside [a-z0-9]. Dropping
// punctuation also merges split-card names ("Fire // Ice" -> "fireice").
//
// Name is idempotent and total. An empty result means the input carried no
// usable name; callers must treat it as unparseable rather than a valid key.
func Name(raw string) string {
	if v, ok := memo.Get(raw); ok {
		return v
	}

	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	s = norm.NFKC.String(s)
	s = stripDiacritics(s)
	s = strings.ToLower(s)
	s = reNonAlnum.ReplaceAllString(s, "")

	memo.Add(raw, s)
	return s
}
