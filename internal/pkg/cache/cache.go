// Package cache keeps the last fetched value of every remote query and
// refetches it in the background when it is invalidated. Readers see the
// previous value until the refetch lands, then the new one atomically.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/cmlabs-hris/hrms-dashboard-go/internal/pkg/sse"
)

// Keys and key prefixes of the dashboard's queries
const (
	KeyEmployees         = "employees"
	KeyAttendanceSummary = "attendance-summary"
	PrefixRecords        = "attendance-records:"
	PrefixToday          = "today-attendance:"
	PrefixTrend          = "attendance-trend:"
)

// RecordsKey names the records query of one employee and range.
func RecordsKey(employeeID, start, end string) string {
	return fmt.Sprintf("%s%s:%s:%s", PrefixRecords, employeeID, start, end)
}

// RecordsPrefix matches every records query of one employee.
func RecordsPrefix(employeeID string) string {
	return PrefixRecords + employeeID + ":"
}

func TodayKey(date string) string {
	return PrefixToday + date
}

func TrendKey(days int, date string) string {
	return fmt.Sprintf("%s%d:%s", PrefixTrend, days, date)
}

// Fetcher loads the authoritative value of a query.
type Fetcher[T any] func(ctx context.Context) (T, error)

// Status is the type-independent state of an entry.
type Status struct {
	Key        string    `json:"key"`
	HasValue   bool      `json:"has_value"`
	Loading    bool      `json:"loading"`
	Error      string    `json:"error,omitempty"`
	Version    uint64    `json:"version"`
	Generation uint64    `json:"generation"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type entry interface {
	Key() string
	Invalidate() uint64
	reload(ctx context.Context) error
	status() Status
	idleSince() time.Time
}

// Store registers queries by key and fans invalidations out to them.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry

	publisher sse.Publisher
	timeout   time.Duration

	// generation is shared by every query so a query registered after an
	// invalidation never starts below it, even after eviction.
	generation atomic.Uint64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewStore creates a store. Applied updates are announced on publisher,
// which may be nil; background refetches are bounded by timeout.
func NewStore(publisher sse.Publisher, timeout time.Duration) *Store {
	ctx, cancel := context.WithCancel(context.Background())
	return &Store{
		entries:   make(map[string]entry),
		publisher: publisher,
		timeout:   timeout,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Register returns the query under key, creating it with fetch on first
// use. Registering an existing key with another value type panics.
func Register[T any](s *Store, key string, fetch Fetcher[T]) *Query[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		q, ok := e.(*Query[T])
		if !ok {
			panic(fmt.Sprintf("cache: key %q registered with a different type", key))
		}
		return q
	}

	q := &Query[T]{
		key:        key,
		fetch:      fetch,
		store:      s,
		generation: s.generation.Load(),
		lastRead:   time.Now(),
	}
	s.entries[key] = q
	return q
}

func (s *Store) nextGeneration() uint64 {
	return s.generation.Add(1)
}

func (s *Store) lookup(key string) (entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	return e, ok
}

func (s *Store) matching(prefix string) []entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []entry
	for key, e := range s.entries {
		if strings.HasPrefix(key, prefix) {
			out = append(out, e)
		}
	}
	return out
}

// Invalidate marks key stale and starts a background refetch. It reports
// whether the key was registered.
func (s *Store) Invalidate(key string) bool {
	e, ok := s.lookup(key)
	if ok {
		e.Invalidate()
	}
	return ok
}

// InvalidatePrefix invalidates every key starting with prefix and returns
// how many there were.
func (s *Store) InvalidatePrefix(prefix string) int {
	entries := s.matching(prefix)
	for _, e := range entries {
		e.Invalidate()
	}
	return len(entries)
}

// Refresh refetches key synchronously.
func (s *Store) Refresh(ctx context.Context, key string) error {
	e, ok := s.lookup(key)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return e.reload(ctx)
}

// Statuses lists every entry ordered by key.
func (s *Store) Statuses() []Status {
	s.mu.RLock()
	out := make([]Status, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.status())
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// EvictIdle drops entries under prefix that nobody read for maxIdle.
// Registered keys such as per-day or per-range queries otherwise grow
// without bound.
func (s *Store) EvictIdle(prefix string, maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for key, e := range s.entries {
		if strings.HasPrefix(key, prefix) && e.idleSince().Before(cutoff) {
			delete(s.entries, key)
			n++
		}
	}
	return n
}

// Wait blocks until running background refetches finish.
func (s *Store) Wait() {
	s.wg.Wait()
}

// Close cancels background refetches and waits for them.
func (s *Store) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *Store) publish(st Status) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(sse.Event{Topic: sse.TopicCache, Event: st.Key, Data: st})
}

func (s *Store) background(fn func(ctx context.Context)) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx := s.ctx
		if s.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, s.timeout)
			defer cancel()
		}
		fn(ctx)
	}()
}

// Snapshot is a consistent view of a query.
type Snapshot[T any] struct {
	Value    T
	HasValue bool
	Loading  bool
	Err      error
	// Version counts applied values.
	Version uint64
	// Generation is the invalidation generation the value was fetched at.
	Generation uint64
	UpdatedAt  time.Time
}

// Query is one cached remote value.
type Query[T any] struct {
	key   string
	fetch Fetcher[T]
	store *Store
	group singleflight.Group

	mu         sync.Mutex
	value      T
	hasValue   bool
	err        error
	fetching   int
	generation uint64 // store-wide counter value at the last invalidation
	applied    uint64 // generation of the current value
	version    uint64
	updatedAt  time.Time
	lastRead   time.Time
}

func (q *Query[T]) Key() string {
	return q.key
}

// Get returns the current value. Only a query that never loaded fetches
// synchronously; a stale value is served while its refetch runs.
func (q *Query[T]) Get(ctx context.Context) (T, error) {
	q.mu.Lock()
	q.lastRead = time.Now()
	if q.hasValue {
		v := q.value
		q.mu.Unlock()
		return v, nil
	}
	gen := q.generation
	q.mu.Unlock()

	return q.load(ctx, gen)
}

// Snapshot returns the value together with its loading and error flags.
func (q *Query[T]) Snapshot() Snapshot[T] {
	q.mu.Lock()
	defer q.mu.Unlock()
	return Snapshot[T]{
		Value:      q.value,
		HasValue:   q.hasValue,
		Loading:    q.fetching > 0,
		Err:        q.err,
		Version:    q.version,
		Generation: q.applied,
		UpdatedAt:  q.updatedAt,
	}
}

// Invalidate marks the value stale and returns the new generation. A query
// holding a value refetches in the background; one that never loaded
// fetches on its next Get.
func (q *Query[T]) Invalidate() uint64 {
	q.mu.Lock()
	q.generation = q.store.nextGeneration()
	gen := q.generation
	refetch := q.hasValue
	if refetch {
		q.fetching++
	}
	q.mu.Unlock()

	if refetch {
		q.store.background(func(ctx context.Context) {
			if _, err := q.fetchAndApply(ctx, gen); err != nil {
				slog.Warn("Cache refetch failed",
					"key", q.key,
					"generation", gen,
					"error", err,
				)
			}
		})
	}
	return gen
}

// Refresh invalidates and refetches synchronously.
func (q *Query[T]) Refresh(ctx context.Context) (T, error) {
	q.mu.Lock()
	q.generation = q.store.nextGeneration()
	gen := q.generation
	q.mu.Unlock()

	return q.load(ctx, gen)
}

func (q *Query[T]) reload(ctx context.Context) error {
	_, err := q.Refresh(ctx)
	return err
}

// load fetches for generation gen. Concurrent loads of one generation
// share a single fetch.
func (q *Query[T]) load(ctx context.Context, gen uint64) (T, error) {
	q.mu.Lock()
	q.fetching++
	q.mu.Unlock()

	return q.fetchAndApply(ctx, gen)
}

// fetchAndApply expects the caller to have counted the fetch as running.
func (q *Query[T]) fetchAndApply(ctx context.Context, gen uint64) (T, error) {
	v, err, _ := q.group.Do(fmt.Sprintf("%s#%d", q.key, gen), func() (interface{}, error) {
		// the fetch is shared; one waiter giving up must not fail the others
		fetchCtx := context.WithoutCancel(ctx)
		if q.store.timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, q.store.timeout)
			defer cancel()
		}
		return q.fetch(fetchCtx)
	})

	q.mu.Lock()
	q.fetching--
	if err != nil {
		// a failed refetch keeps the previous value
		if gen >= q.applied {
			q.err = err
		}
		q.mu.Unlock()
		var zero T
		return zero, err
	}

	value, _ := v.(T)
	if q.hasValue && gen < q.applied {
		// a newer generation already landed; this result is stale
		current := q.value
		q.mu.Unlock()
		slog.Debug("Cache discarded stale result", "key", q.key, "generation", gen)
		return current, nil
	}

	q.value = value
	q.hasValue = true
	q.err = nil
	q.applied = gen
	q.version++
	q.updatedAt = time.Now()
	st := q.statusLocked()
	q.mu.Unlock()

	q.store.publish(st)
	return value, nil
}

func (q *Query[T]) status() Status {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.statusLocked()
}

func (q *Query[T]) statusLocked() Status {
	st := Status{
		Key:        q.key,
		HasValue:   q.hasValue,
		Loading:    q.fetching > 0,
		Version:    q.version,
		Generation: q.applied,
		UpdatedAt:  q.updatedAt,
	}
	if q.err != nil {
		st.Error = q.err.Error()
	}
	return st
}

func (q *Query[T]) idleSince() time.Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.lastRead
}
