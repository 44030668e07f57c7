package scanner

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/infotecha/modhub/pkg/descriptor"
)

// DefaultCacheTTL is how long a resolved descriptor is served from cache
// before a fresh fetch is issued.
const DefaultCacheTTL = 5 * time.Minute

// lookupCache memoizes scan results per repository name to bound redundant
// network calls. Entries expire after the TTL, measured from insertion; an
// expired entry is a miss even if go-cache has not evicted it yet.
//
// The scanner resolves repositories sequentially, so the cache never sees
// concurrent writers. If resolution is ever parallelized, this needs
// single-flight semantics so concurrent callers for one key share a fetch.
type lookupCache struct {
	store *gocache.Cache
}

// newLookupCache creates a cache with the given TTL.
func newLookupCache(ttl time.Duration) *lookupCache {
	return &lookupCache{
		store: gocache.New(ttl, 2*ttl),
	}
}

// Get returns the cached result for a repository, honoring the TTL.
func (c *lookupCache) Get(repo string) (descriptor.ScanResult, bool) {
	v, ok := c.store.Get(repo)
	if !ok {
		return descriptor.ScanResult{}, false
	}
	result, ok := v.(descriptor.ScanResult)
	return result, ok
}

// Put stores a result, replacing any existing entry and restamping its TTL.
func (c *lookupCache) Put(repo string, result descriptor.ScanResult) {
	c.store.Set(repo, result, gocache.DefaultExpiration)
}
