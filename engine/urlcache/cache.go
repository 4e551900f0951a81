package urlcache

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

var errNoFetcher = errors.New("urlcache: no fetcher configured")

// Entry is one cached URL's data and fetch-lifecycle bookkeeping, mirroring
// url_cache.cpp's Entry.
type Entry struct {
	Key       UrlKey
	URL       string
	Data      []byte
	Mime      MimeType
	State     State
	Priority  Priority
	TTL       time.Duration
	LastUsed  time.Time
	LockCount int

	handles []*Handle
}

func (e *Entry) size() int {
	return len(e.Data) + len(e.URL)
}

func (e *Entry) handleFlags() Flags {
	var f Flags
	for _, h := range e.handles {
		f |= h.Flags
	}
	return f
}

// Handle is a caller's reference into an Entry: a notify sink, user data,
// and flags that modify the entry's lifecycle while the handle exists
// (url_cache.h's UrlFlag/Handle).
type Handle struct {
	Entry    *Entry
	SinkID   int
	Flags    Flags
	UserData interface{}
}

// NotifyCallback is delivered synchronously, under the cache's lock, for
// every handle registered against a sink (spec.md §5). Implementations
// must not call back into the Cache. The return value only matters for
// NotifyQueryEvict: returning false vetoes the candidate eviction.
type NotifyCallback func(handle *Handle, kind Notification, state State) bool

type notifySink struct {
	id       int
	callback NotifyCallback
}

// FetchSlot is one concurrent fetch in flight. ID is regenerated each time
// a slot is populated so a Fetcher implementation (e.g. one backed by a
// real async transport) can correlate a late-arriving result to the
// request that produced it, the role url_cache.cpp's curl easy-handle
// pointer plays for its CURLINFO_PRIVATE lookup.
type FetchSlot struct {
	ID    uuid.UUID
	State State
	Key   UrlKey
}

// Fetcher performs one blocking fetch for a queued URL. Cache.Update calls
// it synchronously for each idle slot it populates — spec.md §5's "fetch-
// slot state transitions happen inside update() calls" describes exactly
// this, so unlike url_cache.cpp's async libcurl multi-handle, no simplification
// is needed here to match the spec.
type Fetcher interface {
	Fetch(url string) ([]byte, MimeType, error)
}

// Cache is a mutex-protected URL fetch cache with a bounded number of
// concurrent fetch slots and a memory budget enforced by LRU eviction.
type Cache struct {
	mu sync.Mutex

	entries     map[UrlKey]*Entry
	fetchQueues [numPriorityLevels][]*Entry
	slots       []*FetchSlot
	memoryLimit int
	nextSinkID  int
	sinks       []notifySink
}

// New returns an empty cache with the given memory limit (bytes, 0 = no
// limit) and number of concurrent fetch slots.
func New(memoryLimit, numSlots int) *Cache {
	if numSlots <= 0 {
		numSlots = DefaultFetchSlots
	}
	c := &Cache{
		entries:     make(map[UrlKey]*Entry),
		memoryLimit: memoryLimit,
		slots:       make([]*FetchSlot, numSlots),
	}
	for i := range c.slots {
		c.slots[i] = &FetchSlot{State: StateIdle}
	}
	return c
}

// Slots returns a copy of the cache's slot list, taken under the cache's
// lock, for a caller (a test, or an async Fetcher correlating in-flight
// requests by ID). The copy shares the *FetchSlot values themselves, which
// later Update calls keep modifying.
func (c *Cache) Slots() []*FetchSlot {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*FetchSlot, len(c.slots))
	copy(out, c.slots)
	return out
}

// AddNotifySink registers cb and returns a sink id handles can target.
func (c *Cache) AddNotifySink(cb NotifyCallback) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSinkID
	c.nextSinkID++
	c.sinks = append(c.sinks, notifySink{id: id, callback: cb})
	return id
}

// RemoveNotifySink unregisters a sink; handles still targeting it simply
// stop being notified.
func (c *Cache) RemoveNotifySink(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, s := range c.sinks {
		if s.id == id {
			c.sinks = append(c.sinks[:i], c.sinks[i+1:]...)
			return
		}
	}
}

// Insert adds already-available data under key, bypassing the fetch queue
// entirely (url_cache.cpp's cache_insert with a local-fetch hit).
func (c *Cache) Insert(key UrlKey, url string, data []byte, mime MimeType, ttl time.Duration, now time.Time) *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e := &Entry{Key: key, URL: url, Data: data, Mime: mime, State: StateReady, Priority: PriorityNoFetch, TTL: ttl, LastUsed: now}
	c.entries[key] = e
	return e
}

// Request enqueues key for fetching at priority, creating the entry if it
// doesn't already exist. Calling Request on an entry already in the
// queue re-prioritizes it.
func (c *Cache) Request(key UrlKey, url string, priority Priority, ttl time.Duration, now time.Time) *Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		e = &Entry{Key: key, URL: url, Priority: PriorityUnset, TTL: ttl, LastUsed: now}
		c.entries[key] = e
	}
	if e.State == StateIdle || e.State == StateFailed {
		e.State = StateQueued
	}
	c.requeue(e, priority)
	return e
}

func (c *Cache) requeue(e *Entry, priority Priority) {
	if e.Priority == priority {
		return
	}
	c.dequeue(e)
	if priority == PriorityUnset {
		return
	}
	c.fetchQueues[priority] = append(c.fetchQueues[priority], e)
	e.Priority = priority
}

func (c *Cache) dequeue(e *Entry) {
	if e.Priority == PriorityUnset {
		return
	}
	q := c.fetchQueues[e.Priority]
	for i, other := range q {
		if other == e {
			c.fetchQueues[e.Priority] = append(q[:i], q[i+1:]...)
			break
		}
	}
	e.Priority = PriorityUnset
}

// Query reports an entry's current fetch state, data size and mime type.
func (c *Cache) Query(key UrlKey) (State, int, MimeType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return StateIdle, 0, MimeNone
	}
	return e.State, len(e.Data), e.Mime
}

// Lock returns key's data and increments its lock count, pinning it
// against eviction until a matching Unlock. It returns nil if the entry
// doesn't exist or isn't ready.
func (c *Cache) Lock(key UrlKey) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || e.State != StateReady {
		return nil
	}
	e.LockCount++
	return e.Data
}

// Unlock decrements key's lock count.
func (c *Cache) Unlock(key UrlKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[key]; ok && e.LockCount > 0 {
		e.LockCount--
	}
}

// AddHandle attaches a handle carrying sinkID/flags/userData to key's
// entry, honoring FlagReuseSinkHandle/FlagReuseDataHandle
// (url_cache.cpp's cache_add_handle). It returns nil if key isn't cached.
func (c *Cache) AddHandle(key UrlKey, sinkID int, flags Flags, userData interface{}) *Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if flags&FlagReuseDataHandle != 0 {
		for _, h := range e.handles {
			if h.UserData == userData {
				return h
			}
		}
	} else if flags&FlagReuseSinkHandle != 0 {
		for _, h := range e.handles {
			if h.SinkID == sinkID {
				return h
			}
		}
	}
	h := &Handle{Entry: e, SinkID: sinkID, Flags: flags, UserData: userData}
	e.handles = append(e.handles, h)
	return h
}

func (c *Cache) notify(e *Entry, kind Notification) {
	for _, h := range e.handles {
		for _, s := range c.sinks {
			if s.id == h.SinkID {
				s.callback(h, kind, e.State)
			}
		}
	}
}

// Update drains completed and newly-dispatched work on every idle slot,
// then runs LRU eviction against the memory limit. It acquires the lock
// for the whole call, matching spec.md §5's synchronous-under-lock
// notification discipline; fetcher must not call back into c.
func (c *Cache) Update(fetcher Fetcher, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.populateFetchSlots(fetcher, now)
	c.evictExpired(now)
	c.evictToMemoryLimit(now)
}

// populateFetchSlots dequeues the most urgent entries into idle slots and
// runs the fetch synchronously (url_cache.cpp's cache_populate_fetch_slots
// + cache_handle_request_complete, collapsed into one synchronous step per
// spec.md §5).
func (c *Cache) populateFetchSlots(fetcher Fetcher, now time.Time) {
	for _, slot := range c.slots {
		if slot.State != StateIdle {
			continue
		}
		e := c.dequeueMostUrgent()
		if e == nil {
			return
		}
		slot.ID = uuid.New()
		slot.Key = e.Key
		slot.State = StateFetching
		e.State = StateFetching

		var data []byte
		var mime MimeType
		var err error
		if fetcher != nil {
			data, mime, err = fetcher.Fetch(e.URL)
		} else {
			err = errNoFetcher
		}
		if err == nil {
			e.Data, e.Mime, e.State, e.LastUsed = data, mime, StateReady, now
		} else {
			e.State = StateFailed
		}
		slot.State = StateIdle
		c.notify(e, NotifyFetch)
		if e.handleFlags()&FlagKeepURL == 0 {
			e.URL = ""
		}
	}
}

// dequeueMostUrgent pops the head of the highest nonempty priority queue
// above PriorityNoFetch, skipping locked entries.
func (c *Cache) dequeueMostUrgent() *Entry {
	for p := numPriorityLevels - 1; p > int(PriorityNoFetch); p-- {
		q := c.fetchQueues[p]
		for i, e := range q {
			if e.LockCount != 0 {
				continue
			}
			c.fetchQueues[p] = append(q[:i], q[i+1:]...)
			e.Priority = PriorityUnset
			return e
		}
	}
	return nil
}

func (c *Cache) evictExpired(now time.Time) {
	for key, e := range c.entries {
		if e.TTL <= 0 || e.LockCount != 0 || e.handleFlags()&FlagPreventEvict != 0 {
			continue
		}
		if now.Sub(e.LastUsed) > e.TTL {
			c.evict(key, e)
		}
	}
}

func (c *Cache) evictToMemoryLimit(now time.Time) {
	if c.memoryLimit <= 0 {
		return
	}
	used := 0
	var candidates []*Entry
	for _, e := range c.entries {
		used += e.size()
		if e.LockCount != 0 || e.handleFlags()&FlagPreventEvict != 0 {
			continue
		}
		candidates = append(candidates, e)
	}
	if used <= c.memoryLimit {
		return
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].LastUsed.Before(candidates[j].LastUsed) })
	for _, e := range candidates {
		if used <= c.memoryLimit {
			return
		}
		if c.evict(e.Key, e) {
			used -= e.size()
		}
	}
}

// evict runs the query-evict veto round, then — unless a sink vetoed it —
// removes the entry and fires NotifyEvict. It reports whether eviction
// actually happened.
func (c *Cache) evict(key UrlKey, e *Entry) bool {
	for _, h := range e.handles {
		for _, s := range c.sinks {
			if s.id == h.SinkID {
				if !s.callback(h, NotifyQueryEvict, e.State) {
					return false
				}
			}
		}
	}
	c.dequeue(e)
	e.State = StateEvicted
	c.notify(e, NotifyEvict)
	delete(c.entries, key)
	return true
}
