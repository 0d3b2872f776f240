package enrich

import (
	"crypto/md5"
	"encoding/hex"
	"strings"

	"github.com/rs/zerolog"

	"github.com/finleaf/statement-ledger/internal/models"
	"github.com/finleaf/statement-ledger/internal/store"
)

// maxLiteralKeyLen is the normalized-text length above which the cache key
// switches to a fixed-length content hash.
const maxLiteralKeyLen = 500

// NormalizeText lowercases, trims, and collapses all whitespace runs to
// single spaces, so texts equal up to case and spacing share one cache key.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// CacheKey derives the content-addressed key for a transaction text: the
// normalized text itself when short, else its md5 hex digest.
func CacheKey(text string) string {
	normalized := NormalizeText(text)
	if len(normalized) > maxLiteralKeyLen {
		sum := md5.Sum([]byte(normalized))
		return hex.EncodeToString(sum[:])
	}
	return normalized
}

// Cache is the persistent mapping from cache key to a previously obtained
// classification. It lives in one JSON file protected by the store package's
// swap-on-write protocol.
type Cache struct {
	path    string
	entries map[string]models.Classification
	dirty   bool
}

// OpenCache loads the cache file. A corrupt file is logged and replaced by
// an empty cache rather than aborting the run.
func OpenCache(path string, log zerolog.Logger) *Cache {
	c := &Cache{path: path, entries: map[string]models.Classification{}}
	if err := store.LoadJSON(path, &c.entries); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("enrichment cache unreadable, starting empty")
		c.entries = map[string]models.Classification{}
	}
	return c
}

func (c *Cache) Get(key string) (models.Classification, bool) {
	cls, ok := c.entries[key]
	return cls, ok
}

func (c *Cache) Put(key string, cls models.Classification) {
	c.entries[key] = cls
	c.dirty = true
}

func (c *Cache) Len() int {
	return len(c.entries)
}

// Flush persists the cache if anything was added since the last flush.
func (c *Cache) Flush() error {
	if !c.dirty {
		return nil
	}
	if err := store.SaveJSON(c.path, c.entries); err != nil {
		return err
	}
	c.dirty = false
	return nil
}
