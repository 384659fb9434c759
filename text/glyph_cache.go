package text

import (
	"slices"
	"sync"
	"sync/atomic"
)

// GlyphCache maps codepoints of one font to their cached glyphs.
//
// Entries are added in batches by FontEntry.Ensure and are never replaced
// or evicted. A reader sees either none or all of a batch.
//
// GlyphCache is safe for concurrent use.
type GlyphCache struct {
	mu       sync.RWMutex
	entries  map[rune]GlyphEntry
	textures []*GlyphTexture // arena, index is TextureID

	stats glyphCacheStats
}

// glyphCacheStats holds cache statistics.
type glyphCacheStats struct {
	Hits       atomic.Uint64
	Misses     atomic.Uint64
	Insertions atomic.Uint64
	Batches    atomic.Uint64
}

// CacheStats is a snapshot of GlyphCache statistics.
type CacheStats struct {
	Hits       uint64
	Misses     uint64
	Insertions uint64
	Batches    uint64
}

// HitRate returns the cache hit rate as a percentage.
// Returns 0 if there are no accesses.
func (s CacheStats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

func newGlyphCache() *GlyphCache {
	return &GlyphCache{entries: make(map[rune]GlyphEntry)}
}

// Get returns the cached glyph for r, or an *UnknownGlyphError if r has not
// been ensured.
func (c *GlyphCache) Get(r rune) (GlyphEntry, error) {
	c.mu.RLock()
	e, ok := c.entries[r]
	c.mu.RUnlock()

	if !ok {
		c.stats.Misses.Add(1)
		return GlyphEntry{}, &UnknownGlyphError{Rune: r}
	}
	c.stats.Hits.Add(1)
	return e, nil
}

// Contains reports whether r is cached.
func (c *GlyphCache) Contains(r rune) bool {
	c.mu.RLock()
	_, ok := c.entries[r]
	c.mu.RUnlock()
	return ok
}

// Missing returns the codepoints of runes that are not cached, sorted and
// without duplicates.
func (c *GlyphCache) Missing(runes []rune) []rune {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var missing []rune
	for _, r := range runes {
		if _, ok := c.entries[r]; !ok {
			missing = append(missing, r)
		}
	}
	slices.Sort(missing)
	return slices.Compact(missing)
}

// Len returns the number of cached codepoints.
func (c *GlyphCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Texture returns the texture with the given ID.
func (c *GlyphCache) Texture(id TextureID) (*GlyphTexture, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if int(id) >= len(c.textures) {
		return nil, false
	}
	return c.textures[id], true
}

// Textures returns a snapshot of all textures in ID order.
func (c *GlyphCache) Textures() []*GlyphTexture {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.textures)
}

// TextureCount returns the number of textures in the arena.
func (c *GlyphCache) TextureCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.textures)
}

// Stats returns cache statistics.
func (c *GlyphCache) Stats() CacheStats {
	return CacheStats{
		Hits:       c.stats.Hits.Load(),
		Misses:     c.stats.Misses.Load(),
		Insertions: c.stats.Insertions.Load(),
		Batches:    c.stats.Batches.Load(),
	}
}

// computedGlyph is a glyph computed outside the lock, waiting for commit.
type computedGlyph struct {
	r       rune
	advance float32
	texture *GlyphTexture // ID assigned at commit
}

// commit inserts a batch under one write lock. Textures receive IDs in
// ascending codepoint order. Codepoints already cached are left untouched.
// Returns the number of inserted entries.
func (c *GlyphCache) commit(batch []computedGlyph) int {
	slices.SortFunc(batch, func(a, b computedGlyph) int { return int(a.r) - int(b.r) })

	c.mu.Lock()
	defer c.mu.Unlock()

	inserted := 0
	for _, g := range batch {
		if _, ok := c.entries[g.r]; ok {
			continue
		}
		if g.texture != nil {
			g.texture.ID = TextureID(len(c.textures)) //nolint:gosec // arena size is bounded by codepoints
			c.textures = append(c.textures, g.texture)
		}
		c.entries[g.r] = GlyphEntry{Advance: g.advance, Texture: g.texture}
		inserted++
	}

	c.stats.Insertions.Add(uint64(inserted)) //nolint:gosec // non-negative
	c.stats.Batches.Add(1)
	return inserted
}
