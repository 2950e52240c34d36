package compiler

import (
	"crypto/sha256"
	"log/slog"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru"

	"github.com/apccurtiss/langlang/ast"
	"github.com/apccurtiss/langlang/grammar"
	"github.com/apccurtiss/langlang/langdef"
	"github.com/apccurtiss/langlang/source"
)

const DefaultCacheSize = 64

// Cache memoizes compiled grammars by SHA-256 of grammar description.
// Only successful compilations are cached. Grammars containing print statements
// are not cached either, so their output is logged on every compilation.
// Cache is safe for concurrent use, cached grammars are shared and must not be modified.
type Cache struct {
	compiler *Compiler
	arc      *lru.ARCCache
	hits     atomic.Int64
	misses   atomic.Int64
}

// NewCache creates a cache holding up to size grammars, DefaultCacheSize if size is not positive.
func NewCache(c *Compiler, size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	arc, e := lru.NewARC(size)
	if e != nil {
		return nil, e
	}
	return &Cache{compiler: c, arc: arc}, nil
}

// CompileSource returns cached grammar for the same content or compiles the source.
func (c *Cache) CompileSource(s *source.Source) (*grammar.Grammar, error) {
	key := sha256.Sum256(s.Content())
	if lookup, ok := c.arc.Get(key); ok {
		c.hits.Add(1)
		c.logger().Debug("compile cache hit", "source", s.Name())
		return lookup.(*grammar.Grammar), nil
	}

	c.misses.Add(1)
	f, e := langdef.Parse(s)
	if e != nil {
		return nil, e
	}

	g, e := c.compiler.Compile(f)
	if e != nil {
		return nil, e
	}

	if hasPrint(f) {
		c.logger().Debug("grammar with print statements not cached", "source", s.Name())
	} else {
		c.arc.Add(key, g)
	}
	return g, nil
}

// CompileString is a shortcut for CompileSource(source.New(name, []byte(text))).
func (c *Cache) CompileString(name, text string) (*grammar.Grammar, error) {
	return c.CompileSource(source.New(name, []byte(text)))
}

// Stats returns numbers of cache hits and misses.
func (c *Cache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Cache) Len() int {
	return c.arc.Len()
}

func (c *Cache) Purge() {
	c.arc.Purge()
}

func hasPrint(f *ast.File) bool {
	return len(ast.Filter(f, func(n ast.Node) bool { return n.Kind() == ast.PrintKind })) > 0
}

func (c *Cache) logger() *slog.Logger {
	if c.compiler.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.compiler.Logger
}
