package config

import (
	"crypto/sha256"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dhamidi/havoc/idl"
	"github.com/dhamidi/havoc/idl/parser"
)

// DefaultCacheSize is the number of documents NewParseCache keeps when
// given a non-positive size.
const DefaultCacheSize = 128

// ParseCache memoizes parsed documents by the SHA-256 of their source
// text. Documents are read-only, so one cached document may be shared by
// every configuration that references the same text. Failed parses are not
// cached.
type ParseCache struct {
	docs   *lru.Cache[[sha256.Size]byte, *idl.Document]
	hits   atomic.Int64
	misses atomic.Int64
}

func NewParseCache(size int) *ParseCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	docs, err := lru.New[[sha256.Size]byte, *idl.Document](size)
	if err != nil {
		// lru.New only fails for non-positive sizes.
		panic(err)
	}
	return &ParseCache{docs: docs}
}

// Parse returns the cached document for text or parses it.
func (c *ParseCache) Parse(name string, text []byte) (*idl.Document, error) {
	key := sha256.Sum256(text)
	if doc, ok := c.docs.Get(key); ok {
		c.hits.Add(1)
		return doc, nil
	}
	c.misses.Add(1)
	doc, err := parser.Parse(text, parser.WithFile(name))
	if err != nil {
		return nil, err
	}
	c.docs.Add(key, doc)
	return doc, nil
}

// Stats reports cache hits and misses since creation.
func (c *ParseCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *ParseCache) Len() int {
	return c.docs.Len()
}
