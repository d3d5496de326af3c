package musictime

import (
	"math"
	"strconv"
	"sync"
)

// CacheKey identifies one elapsed-time conversion.
type CacheKey struct {
	Tempo               float64
	Bars                int
	Beats               int
	Subdivisions        int
	Remainder           float64
	BeatsPerBar         int
	SubdivisionsPerBeat int
}

// String renders the key as "tempo-bars-beats-subdivisions-beatsPerBar-subdivisionsPerBeat",
// with the remainder appended when it is non-zero.
func (k CacheKey) String() string {
	s := strconv.FormatFloat(k.Tempo, 'f', -1, 64) + "-" +
		strconv.Itoa(k.Bars) + "-" +
		strconv.Itoa(k.Beats) + "-" +
		strconv.Itoa(k.Subdivisions) + "-" +
		strconv.Itoa(k.BeatsPerBar) + "-" +
		strconv.Itoa(k.SubdivisionsPerBeat)
	if k.Remainder != 0 {
		s += "-" + strconv.FormatFloat(k.Remainder, 'f', -1, 64)
	}
	return s
}

// Cache memoizes elapsed-time conversions. It has no eviction and grows until
// Clear is called. It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[CacheKey]float64
}

// DefaultCache is used by MusicTime.ElapsedSeconds.
var DefaultCache = NewCache()

// ClearCache empties DefaultCache.
func ClearCache() {
	DefaultCache.Clear()
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[CacheKey]float64)}
}

// KeyFor returns the cache key of t converted at tempo.
func KeyFor(t MusicTime, tempo float64) CacheKey {
	f := t.Fields()
	sig := t.signature()
	return CacheKey{
		Tempo:               tempo,
		Bars:                f.Bars,
		Beats:               f.Beats,
		Subdivisions:        f.Subdivisions,
		Remainder:           f.Remainder,
		BeatsPerBar:         sig.BeatsPerBar,
		SubdivisionsPerBeat: sig.SubdivisionsPerBeat,
	}
}

// ElapsedSeconds returns the length of t in seconds at tempo beats per
// minute, computing and storing it on a miss. A tempo that is not positive
// and finite yields NaN and is never stored.
func (c *Cache) ElapsedSeconds(t MusicTime, tempo float64) float64 {
	if validateTempo(tempo) != nil {
		return math.NaN()
	}

	key := KeyFor(t, tempo)
	if v, ok := c.Lookup(key); ok {
		return v
	}

	v := t.beats * 60 / tempo

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have stored the key since Lookup.
	if existing, ok := c.entries[key]; ok {
		return existing
	}
	c.entries[key] = v
	return v
}

// Lookup returns the stored value for key.
func (c *Cache) Lookup(key CacheKey) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Len returns the number of entries in the cache.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[CacheKey]float64)
}
