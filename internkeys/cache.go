// Package internkeys implements the decoder's per-call key intern cache: a
// map from raw, unescaped object-key bytes to an already-materialized key
// string, used to avoid reallocating repeated keys in arrays of homogeneous
// objects. The cache is owned by a single decode call, never shared, and
// bounded so pathological key sets degrade to "parse normally" rather than
// growing without limit.
package internkeys

import "github.com/cespare/xxhash/v2"

// MaxEntries bounds the number of unique keys the cache will hold. Once it
// is reached, Insert is a no-op, so keys not already cached are
// materialized without being added; Lookup keeps returning hits for the
// keys cached before the bound was reached.
const MaxEntries = 4096

// Cache is a private, per-decode-call intern table. The zero value is ready
// to use. Cache is not safe for concurrent use, matching the single-call
// ownership model of the rest of the core.
type Cache struct {
	entries map[uint64][]entry
	n       int
}

type entry struct {
	raw []byte
	key string
}

// Lookup returns the interned key string for raw key bytes that contain no
// escape sequences, and whether it was found. Callers must never call
// Lookup for a raw key slice that contains a backslash; interning is
// reserved for escape-free keys only.
func (c *Cache) Lookup(raw []byte) (string, bool) {
	if c.entries == nil {
		return "", false
	}
	h := xxhash.Sum64(raw)
	for _, e := range c.entries[h] {
		if string(e.raw) == string(raw) {
			return e.key, true
		}
	}
	return "", false
}

// Insert records a materialized key for future Lookup calls. It is a no-op
// once MaxEntries unique keys have been recorded.
func (c *Cache) Insert(raw []byte, key string) {
	if c.n >= MaxEntries {
		return
	}
	if c.entries == nil {
		c.entries = make(map[uint64][]entry)
	}
	h := xxhash.Sum64(raw)
	rawCopy := make([]byte, len(raw))
	copy(rawCopy, raw)
	c.entries[h] = append(c.entries[h], entry{raw: rawCopy, key: key})
	c.n++
}
