package urlcache

import (
	"hash/fnv"
	"time"
)

// UrlKey identifies a cache entry by a hash of its URL string, taken as
// given (no normalization).
type UrlKey uint64

// Key hashes a URL string into a UrlKey. Grounded on url_cache.cpp's
// cache_make_key (murmur3_64 over the parsed URL); this module has no
// pack dependency offering a non-cryptographic string hash, so it falls
// back to stdlib hash/fnv, which is exactly the kind of narrow-purpose
// hashing stdlib is meant for.
func Key(url string) UrlKey {
	h := fnv.New64a()
	h.Write([]byte(url))
	return UrlKey(h.Sum64())
}

// MimeType is the content type recorded for a cached entry.
type MimeType uint8

const (
	MimeOctetStream MimeType = iota
	MimeJSON
	MimeText
	MimeHTML
	MimePNG
	MimeJPEG
	MimeGIF
	MimeNone
)

// Priority orders entries in the fetch queue; higher values are serviced
// first. PriorityNoFetch marks an entry that never needs fetching (local
// data, or disk-resident per url_cache.cpp's URL_FETCH_DISK).
type Priority int8

const (
	PriorityUnset    Priority = -1
	PriorityNoFetch  Priority = 0
	PriorityNormal   Priority = 1
	PriorityElevated Priority = 2
	PriorityUrgent   Priority = 3
)

const numPriorityLevels = int(PriorityUrgent) + 1

// State is a cache entry's position in the fetch lifecycle.
type State uint8

const (
	StateIdle State = iota
	StateQueued
	StateFetching
	StateReady
	StateFailed
	StateEvicted
)

// Notification is the kind of event delivered to a Handle's sink.
type Notification uint8

const (
	// NotifyFetch fires when a fetch completes (ready or failed).
	NotifyFetch Notification = iota
	// NotifyEvict fires when an entry is evicted.
	NotifyEvict
	// NotifyQueryEvict fires before a candidate eviction, giving the sink
	// a chance to veto it by returning false from its callback.
	NotifyQueryEvict
)

// Flags are per-handle behavior bits, mirroring url_cache.h's UrlFlag.
type Flags uint8

const (
	FlagDiscard         Flags = 1 << iota // recorded on the handle only; the cache has no handle release and does not act on it
	FlagReuseSinkHandle                   // return an existing handle sharing this sink instead of a new one
	FlagReuseDataHandle                   // return an existing handle sharing this user data instead of a new one
	FlagKeepURL                           // keep the entry's URL string after fetch completion
	FlagPreventEvict                      // the entry is never evicted while this handle exists
)

// DefaultMemoryLimit, DefaultFetchSlots and DefaultTTL mirror
// url_cache.h's DEFAULT_MEMORY_LIMIT/DEFAULT_FETCH_SLOTS/DEFAULT_TTL_SECS.
const (
	DefaultMemoryLimit = 0x800000
	DefaultFetchSlots  = 5
	DefaultTTL         = 5 * time.Minute
)
