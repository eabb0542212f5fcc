package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_EmptyInputYieldsNoPattern(t *testing.T) {
	for _, text := range []string{"", "   ", "\t\n", `""`} {
		pat, err := Compile(text, false)
		require.NoError(t, err)
		assert.Nil(t, pat, "input %q must yield no pattern", text)
	}
}

func TestCompile_TokenizesWordsWildcardsAndPhrases(t *testing.T) {
	pat, err := Compile(`hello wor*d I am "Shyam Dasgupta"`, false)
	require.NoError(t, err)
	require.NotNil(t, pat)

	// One lookahead per distinct token.
	assert.Equal(t, 5, strings.Count(pat.AllSource, "(?="))

	assert.Contains(t, pat.AnySource, "hello")
	assert.Contains(t, pat.AnySource, `wor[\w-]*d`, "wildcard expands to the word-character class")
	assert.Contains(t, pat.AnySource, "Shyam Dasgupta", "phrase keeps its space, loses its quotes")
	assert.NotContains(t, pat.AnySource, `"`)
}

func TestCompile_DeduplicatesTokens(t *testing.T) {
	pat, err := Compile("pot pot pot shard", false)
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(pat.AllSource, "(?="))
}

func TestCompile_EscapesRegexMetacharacters(t *testing.T) {
	pat, err := Compile("a+b (c)", false)
	require.NoError(t, err)

	assert.True(t, pat.MatchAny("x a+b y"))
	assert.False(t, pat.MatchAny("aab"), "+ must be literal, not a quantifier")
	assert.True(t, pat.MatchAny("(c)"))
}

func TestWordBoundary_DefaultMode(t *testing.T) {
	pat, err := Compile("pot", false)
	require.NoError(t, err)

	assert.False(t, pat.MatchAny("teapot"), "no match mid-word")
	assert.True(t, pat.MatchAny("Potter"), "case-insensitive match at word start")
	assert.True(t, pat.MatchAny("#pottery"), "punctuation counts as a word beginning")
	assert.False(t, pat.MatchAny("tea'pot"), "apostrophes do not begin words")
}

func TestWordBoundary_WithinWordsMode(t *testing.T) {
	pat, err := Compile("pot", true)
	require.NoError(t, err)

	assert.True(t, pat.MatchAny("teapot"))
	assert.True(t, pat.MatchAny("Potter"))
	assert.True(t, pat.MatchAny("#pottery"))
}

func TestMatchAll_RequiresEveryToken(t *testing.T) {
	pat, err := Compile("hello world", false)
	require.NoError(t, err)

	assert.True(t, pat.MatchAll("world says hello"))
	assert.True(t, pat.MatchAll("Hello,\nWorld"))
	assert.False(t, pat.MatchAll("hello there"))
}

func TestMatchAny_RequiresAtLeastOneToken(t *testing.T) {
	pat, err := Compile("hello world", false)
	require.NoError(t, err)

	assert.True(t, pat.MatchAny("hello there"))
	assert.False(t, pat.MatchAny("goodbye moon"))
}

func TestWildcard_MatchesWordCharsAndHyphens(t *testing.T) {
	pat, err := Compile("wor*d", false)
	require.NoError(t, err)

	assert.True(t, pat.MatchAny("word"))
	assert.True(t, pat.MatchAny("world"))
	assert.True(t, pat.MatchAny("wor-hardened-d"))
	assert.False(t, pat.MatchAny("wood"))
}

func TestPhrase_MatchesExactly(t *testing.T) {
	pat, err := Compile(`"Shyam Dasgupta"`, false)
	require.NoError(t, err)

	assert.True(t, pat.MatchAny("reviewed by Shyam Dasgupta today"))
	assert.False(t, pat.MatchAny("Shyam and Dasgupta"))
}

func TestCompileToken_UnbalancedQuoteKept(t *testing.T) {
	p := compileToken(`"half`, true)

	assert.Equal(t, `"half`, p, "a lone quote is an ordinary character")
}
