// Package urlcache memoizes temporary object URLs for hosts that hand
// the same paths out repeatedly. The storage adapter consults a Cache
// only when one is injected; nothing in the core builds or assumes one.
package urlcache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache memoizes temporary URLs by logical path. Implementations must
// be safe for concurrent use; the adapter may be called from many
// goroutines at once.
type Cache interface {
	// Get returns the cached URL for path, or ok=false when no usable
	// entry exists.
	Get(path string) (url string, ok bool)

	// Add records a URL that remains valid until expiresAt. An
	// implementation may decline to store entries it could not serve
	// safely, so Add carries no error.
	Add(path, url string, expiresAt time.Time)

	// Remove drops any entry for path.
	Remove(path string)
}

const (
	// DefaultSize bounds the number of cached URLs when the caller
	// passes a non-positive size.
	DefaultSize = 512

	// DefaultTTL bounds entry age when the caller passes a
	// non-positive TTL.
	DefaultTTL = 5 * time.Minute

	// expiryMargin keeps Get from returning a URL so close to its
	// expiry that the caller could not finish using it.
	expiryMargin = 30 * time.Second
)

type entry struct {
	url       string
	expiresAt time.Time
}

// LRU is an expirable least-recently-used Cache. Entries are evicted by
// recency and by the cache TTL; each hit is additionally checked against
// the URL's own expiry so a long cache TTL can never resurrect a lapsed
// URL.
type LRU struct {
	entries *expirable.LRU[string, entry]

	now func() time.Time
}

var _ Cache = (*LRU)(nil)

// NewLRU builds an LRU holding at most size entries for at most ttl.
// Non-positive arguments fall back to DefaultSize and DefaultTTL.
func NewLRU(size int, ttl time.Duration) *LRU {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &LRU{
		entries: expirable.NewLRU[string, entry](size, nil, ttl),
		now:     time.Now,
	}
}

func (c *LRU) Get(path string) (string, bool) {
	e, ok := c.entries.Get(path)
	if !ok {
		return "", false
	}
	if !c.now().Add(expiryMargin).Before(e.expiresAt) {
		c.entries.Remove(path)
		return "", false
	}
	return e.url, true
}

func (c *LRU) Add(path, url string, expiresAt time.Time) {
	// URLs already expired (or about to) are not worth a slot.
	if url == "" || !c.now().Add(expiryMargin).Before(expiresAt) {
		return
	}
	c.entries.Add(path, entry{url: url, expiresAt: expiresAt})
}

func (c *LRU) Remove(path string) {
	c.entries.Remove(path)
}

// Len reports the number of live entries, counting ones the underlying
// store has not yet expired.
func (c *LRU) Len() int {
	return c.entries.Len()
}
