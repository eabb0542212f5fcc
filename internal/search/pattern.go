// Package search turns raw search strings into the pair of case-insensitive
// regular expressions that feed the filter composition: one requiring every
// token to appear, one requiring at least one.
package search

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

// wildcardClass replaces each * in a token: a run of word characters and
// hyphens.
const wildcardClass = `[\w-]*`

// wordStart anchors a token at the beginning of a word. The target store's
// regex dialect has no \b assertion, so this matches start-of-subject or a
// run of non-alphanumeric, non-apostrophe characters instead. It also
// matches after punctuation such as #, which is wanted.
const wordStart = `(?:^|[^A-Za-z0-9']+)`

// tokenRegex captures whitespace-free runs or double-quoted phrases.
// Quotes stay in the token here and are stripped during compilation.
var tokenRegex = regexp.MustCompile(`"[^"]*"|\S+`)

// Pattern holds the compiled search regexes plus their raw sources for
// $regex emission. All matching is case-insensitive; emitted patterns rely
// on $options "i" instead of an inline flag.
type Pattern struct {
	// All requires every token to occur somewhere in the subject,
	// via a chain of positive lookaheads.
	All *regexp2.Regexp
	// Any requires at least one token, via alternation.
	Any *regexp2.Regexp

	// AllSource and AnySource are the raw pattern strings.
	AllSource string
	AnySource string
}

// MatchAll reports whether every token occurs in the subject.
func (p *Pattern) MatchAll(subject string) bool {
	ok, _ := p.All.MatchString(subject)
	return ok
}

// MatchAny reports whether at least one token occurs in the subject.
func (p *Pattern) MatchAny(subject string) bool {
	ok, _ := p.Any.MatchString(subject)
	return ok
}

// Compile tokenizes text and builds the all/any pattern pair. Returns
// (nil, nil) when the text yields no tokens; callers apply no search filter
// in that case. With withinWords set, tokens may match inside words instead
// of only at word beginnings.
func Compile(text string, withinWords bool) (*Pattern, error) {
	pats := tokenPatterns(text, withinWords)
	if len(pats) == 0 {
		return nil, nil
	}

	anySrc := "(?:" + strings.Join(pats, ")|(?:") + ")"

	var all strings.Builder
	for _, p := range pats {
		// [\s\S] instead of . so tokens are found across newlines.
		all.WriteString(`(?=[\s\S]*(?:`)
		all.WriteString(p)
		all.WriteString(`))`)
	}
	allSrc := all.String()

	allRe, err := regexp2.Compile(allSrc, regexp2.IgnoreCase)
	if err != nil {
		return nil, err
	}
	anyRe, err := regexp2.Compile(anySrc, regexp2.IgnoreCase)
	if err != nil {
		return nil, err
	}
	return &Pattern{
		All:       allRe,
		Any:       anyRe,
		AllSource: allSrc,
		AnySource: anySrc,
	}, nil
}

// tokenPatterns tokenizes text and compiles each token, deduplicating
// compiled patterns by exact string while preserving first-occurrence order.
func tokenPatterns(text string, withinWords bool) []string {
	var out []string
	for _, tok := range tokenRegex.FindAllString(text, -1) {
		p := compileToken(tok, withinWords)
		if p == "" {
			continue
		}
		if !containsString(out, p) {
			out = append(out, p)
		}
	}
	return out
}

// compileToken turns one raw token into a pattern fragment: strip one pair
// of surrounding double quotes (exact-phrase token), escape every regex
// metacharacter except *, expand * to the wildcard class, and unless
// withinWords prefix the word-beginning anchor.
func compileToken(tok string, withinWords bool) string {
	if len(tok) >= 2 && strings.HasPrefix(tok, `"`) && strings.HasSuffix(tok, `"`) {
		tok = tok[1 : len(tok)-1]
	}
	if tok == "" {
		return ""
	}
	p := strings.ReplaceAll(regexp.QuoteMeta(tok), `\*`, wildcardClass)
	if !withinWords {
		p = wordStart + p
	}
	return p
}

func containsString(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
