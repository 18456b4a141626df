package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	suffixRegex        = regexp.MustCompile(`(?i)\s+(Jr\.?|Sr\.?|III|II|IV)$`)
	middleInitialRegex = regexp.MustCompile(`(?:\s+[A-Z]\.)+\s+`)
	leadingInitialRegex = regexp.MustCompile(`^[A-Z]\.\s+`)
	doubleQuotedRegex  = regexp.MustCompile(`"[^"]*"`)
	singleQuotedRegex  = regexp.MustCompile(`'[^']*'`)
	whitespaceRegex    = regexp.MustCompile(`\s+`)
)

var quoteReplacer = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
)

// StripAccents decomposes to NFD and drops combining marks, so
// "Peña" and "Pena" compare equal.
func StripAccents(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeName canonicalizes a person's name for comparison. It strips
// generational suffixes, middle and leading initials, quoted nicknames,
// accents and periods, then collapses whitespace and lowercases.
//
// The function is idempotent: NormalizeName(NormalizeName(x)) == NormalizeName(x).
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	name = suffixRegex.ReplaceAllString(name, "")
	name = middleInitialRegex.ReplaceAllString(name, " ")
	// requires a following component, so a bare "J." survives
	name = leadingInitialRegex.ReplaceAllString(name, "")
	// curly quotes fold to ASCII before nickname stripping so a quoted
	// nickname never survives into the output
	name = quoteReplacer.Replace(name)
	name = doubleQuotedRegex.ReplaceAllString(name, "")
	name = singleQuotedRegex.ReplaceAllString(name, "")
	name = StripAccents(name)
	name = strings.ReplaceAll(name, ".", "")
	name = whitespaceRegex.ReplaceAllString(name, " ")
	return strings.ToLower(strings.TrimSpace(name))
}
