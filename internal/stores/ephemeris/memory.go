package ephemeris

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/ethanbaker/ephemeris/pkg/ephemeris"
)

// InMemoryStore provides an in-memory implementation of StoreInterface for testing
// and local runs
type InMemoryStore struct {
	records []*ephemeris.Record
	nextID  uint
	now     func() time.Time
	mutex   sync.RWMutex
}

var _ ephemeris.StoreInterface = (*InMemoryStore)(nil)

// NewInMemoryStore creates a new in-memory ephemeris store, optionally seeded
func NewInMemoryStore(seed ...*ephemeris.Record) *InMemoryStore {
	s := &InMemoryStore{now: time.Now}
	for _, r := range seed {
		s.insert(r)
	}
	return s
}

// FindByDayMonth returns the first record stored for a day and month
func (s *InMemoryStore) FindByDayMonth(_ context.Context, day, month int) (*ephemeris.Record, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, r := range s.records {
		if r.Day == day && r.Month == month {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

// List returns copies of every record ordered by display date
func (s *InMemoryStore) List(_ context.Context) ([]*ephemeris.Record, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	records := make([]*ephemeris.Record, len(s.records))
	for i, r := range s.records {
		copied := *r
		records[i] = &copied
	}

	// Stable so ties keep insertion order, like a primary key tiebreak
	slices.SortStableFunc(records, func(a, b *ephemeris.Record) int {
		return strings.Compare(a.DisplayDate, b.DisplayDate)
	})

	return records, nil
}

// Insert stores a copy of the record and returns it with its id and creation time
func (s *InMemoryStore) Insert(_ context.Context, record *ephemeris.Record) (*ephemeris.Record, error) {
	if record == nil {
		return nil, errors.New("record cannot be nil")
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	stored := s.insert(record)
	copied := *stored
	return &copied, nil
}

func (s *InMemoryStore) insert(record *ephemeris.Record) *ephemeris.Record {
	s.nextID++

	stored := *record
	stored.ID = s.nextID
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now().UTC()
	}

	s.records = append(s.records, &stored)
	return &stored
}

// Close is a no-op for the in-memory store
func (s *InMemoryStore) Close() error {
	return nil
}
