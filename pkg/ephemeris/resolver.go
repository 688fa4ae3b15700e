package ephemeris

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"
)

// Resolution is the fact chosen for a day and whether it actually matched that day
type Resolution struct {
	Record  *Record `json:"ephemeris"`
	Matched bool    `json:"matched"`
	Date    Date    `json:"date"`
}

// Resolve finds the first record for today's day and month (the year is ignored).
// Without a match it falls back to a uniformly random record; an empty set resolves to nil
func Resolve(records []*Record, today Date, rnd RandomSource) Resolution {
	if record := FindForDate(records, today); record != nil {
		return Resolution{Record: record, Matched: true, Date: today}
	}

	return Resolution{Record: RandomRecord(records, rnd), Date: today}
}

// ResolveForToday returns the record to display for today, or nil when there are none
func ResolveForToday(records []*Record, today Date, rnd RandomSource) *Record {
	return Resolve(records, today, rnd).Record
}

// FindForDate returns the first record whose day and month equal the date's
func FindForDate(records []*Record, date Date) *Record {
	for _, record := range records {
		if record != nil && record.Day == date.Day && record.Month == date.Month {
			return record
		}
	}
	return nil
}

// RandomRecord picks a record uniformly at random, or nil for an empty set
func RandomRecord(records []*Record, rnd RandomSource) *Record {
	if len(records) == 0 {
		return nil
	}
	if rnd == nil {
		rnd = DefaultRandom
	}
	return records[rnd.IntN(len(records))]
}

// DefaultRandom draws from the runtime's shared random generator
var DefaultRandom RandomSource = globalRandom{}

type globalRandom struct{}

func (globalRandom) IntN(n int) int {
	return rand.IntN(n)
}

// Catalog is an in-memory snapshot of every record. It is only reloaded through
// Refresh, so records written by other processes appear after the next refresh
type Catalog struct {
	store StoreInterface
	rnd   RandomSource

	mu       sync.RWMutex
	records  []*Record
	loadedAt time.Time
}

// NewCatalog creates an empty catalog backed by store
func NewCatalog(store StoreInterface, rnd RandomSource) *Catalog {
	if rnd == nil {
		rnd = DefaultRandom
	}
	return &Catalog{store: store, rnd: rnd}
}

// Refresh replaces the snapshot with the store's current contents. On error the
// previous snapshot is kept
func (c *Catalog) Refresh(ctx context.Context) error {
	records, err := c.store.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ephemerides: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = records
	c.loadedAt = time.Now()

	return nil
}

// Records returns a copy of the snapshot
func (c *Catalog) Records() []*Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.records)
}

// LoadedAt returns when the snapshot was last refreshed (zero if never)
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// Today resolves the fact for now's calendar day, in now's location
func (c *Catalog) Today(now time.Time) Resolution {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Resolve(c.records, DateOf(now), c.rnd)
}
