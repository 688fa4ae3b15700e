package ephemeris

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRandom always returns the same index (clamped to n)
type fixedRandom int

func (f fixedRandom) IntN(n int) int {
	return min(int(f), n-1)
}

func record(id uint, day, month, year int) *Record {
	return &Record{ID: id, Day: day, Month: month, Year: year, DisplayDate: Date{day, month, year}.String()}
}

func TestResolveForToday(t *testing.T) {
	today := Date{Day: 19, Month: 10, Year: 2026}

	t.Run("match ignores year", func(t *testing.T) {
		records := []*Record{record(1, 1, 1, 2024), record(2, 19, 10, 2020)}
		got := ResolveForToday(records, today, fixedRandom(0))
		assert.Same(t, records[1], got)
	})

	t.Run("first match wins", func(t *testing.T) {
		records := []*Record{record(1, 5, 5, 2024), record(2, 19, 10, 2024), record(3, 19, 10, 2025)}
		res := Resolve(records, today, fixedRandom(2))
		assert.Same(t, records[1], res.Record)
		assert.True(t, res.Matched)
		assert.Equal(t, today, res.Date)
	})

	t.Run("falls back to random member", func(t *testing.T) {
		records := []*Record{record(1, 1, 1, 2024), record(2, 2, 2, 2024), record(3, 3, 3, 2024)}
		res := Resolve(records, today, fixedRandom(2))
		assert.Same(t, records[2], res.Record)
		assert.False(t, res.Matched)
	})

	t.Run("empty set", func(t *testing.T) {
		assert.Nil(t, ResolveForToday(nil, today, fixedRandom(0)))
		assert.Nil(t, ResolveForToday([]*Record{}, today, nil))
	})
}

func TestRandomRecordIsUniform(t *testing.T) {
	records := []*Record{record(1, 1, 1, 2024), record(2, 2, 2, 2024), record(3, 3, 3, 2024)}
	rnd := rand.New(rand.NewPCG(42, 1024))

	counts := map[uint]int{}
	for range 3000 {
		got := ResolveForToday(records, Date{Day: 31, Month: 12, Year: 2026}, rnd)
		require.Contains(t, records, got)
		counts[got.ID]++
	}

	for _, r := range records {
		assert.Greater(t, counts[r.ID], 800, "record %d drawn too rarely", r.ID)
	}
}

func TestFindForDate(t *testing.T) {
	records := []*Record{nil, record(1, 29, 2, 2024)}

	assert.Same(t, records[1], FindForDate(records, Date{Day: 29, Month: 2, Year: 2028}))
	assert.Nil(t, FindForDate(records, Date{Day: 28, Month: 2, Year: 2028}))
}

// listStore serves List from a slice and can be told to fail
type listStore struct {
	fakeStore
	listErr error
}

func (s *listStore) List(ctx context.Context) ([]*Record, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.fakeStore.List(ctx)
}

func TestCatalog(t *testing.T) {
	store := &listStore{fakeStore: fakeStore{records: []*Record{record(1, 19, 10, 2025)}}}
	catalog := NewCatalog(store, fixedRandom(0))

	// Nothing is loaded until the first refresh
	assert.Nil(t, catalog.Today(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)).Record)
	assert.True(t, catalog.LoadedAt().IsZero())

	require.NoError(t, catalog.Refresh(context.Background()))
	assert.Len(t, catalog.Records(), 1)
	assert.False(t, catalog.LoadedAt().IsZero())

	res := catalog.Today(time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC))
	require.NotNil(t, res.Record)
	assert.True(t, res.Matched)

	// Writes to the store are not visible until the next refresh
	store.records = append(store.records, record(2, 20, 10, 2026))
	assert.Len(t, catalog.Records(), 1)

	// A failed refresh keeps the old snapshot
	store.listErr = errors.New("connection refused")
	err := catalog.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Len(t, catalog.Records(), 1)

	store.listErr = nil
	require.NoError(t, catalog.Refresh(context.Background()))
	assert.Len(t, catalog.Records(), 2)
}

func TestDate(t *testing.T) {
	d := DateOf(time.Date(2030, time.July, 5, 23, 30, 0, 0, time.UTC))
	assert.Equal(t, Date{Day: 5, Month: 7, Year: 2030}, d)
	assert.Equal(t, "5/7/2030", d.String())
	assert.Equal(t, "July", d.MonthName())
	assert.NoError(t, d.Validate())

	tests := []struct {
		name string
		date Date
	}{
		{"missing day", Date{Month: 1, Year: 2026}},
		{"missing year", Date{Day: 1, Month: 1}},
		{"month out of range", Date{Day: 1, Month: 13, Year: 2026}},
		{"not a calendar day", Date{Day: 30, Month: 2, Year: 2026}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var vErr *ValidationError
			assert.ErrorAs(t, tt.date.Validate(), &vErr)
		})
	}
}
