package search

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize is the default number of compiled patterns to keep.
// Patterns are small; this mostly saves recompilation when the same search
// text is applied to several fields.
const DefaultCacheSize = 256

// Compiler compiles search patterns with LRU caching. Identical text and
// mode return the already-compiled pattern.
type Compiler struct {
	cache *lru.Cache[string, *Pattern]
}

// NewCompiler creates a compiler with the given cache size.
func NewCompiler(cacheSize int) *Compiler {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, _ := lru.New[string, *Pattern](cacheSize)
	return &Compiler{cache: cache}
}

func cacheKey(text string, withinWords bool) string {
	if withinWords {
		return text + "\x001"
	}
	return text + "\x000"
}

// Compile returns the pattern pair for text, from cache when possible.
// Texts that yield no tokens return (nil, nil) and are not cached.
func (c *Compiler) Compile(text string, withinWords bool) (*Pattern, error) {
	key := cacheKey(text, withinWords)
	if p, ok := c.cache.Get(key); ok {
		return p, nil
	}
	p, err := Compile(text, withinWords)
	if err != nil || p == nil {
		return p, err
	}
	c.cache.Add(key, p)
	return p, nil
}
