package ephemeris

import (
	"context"
	"sync"
	"testing"

	"github.com/ethanbaker/ephemeris/pkg/ephemeris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(
		&ephemeris.Record{Day: 2, Month: 1, Year: 2030, DisplayDate: "2/1/2030"},
		&ephemeris.Record{Day: 10, Month: 1, Year: 2030, DisplayDate: "10/1/2030"},
	)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// Lexicographic order puts "10/1" before "2/1"
	assert.Equal(t, "10/1/2030", records[0].DisplayDate)
	assert.Equal(t, uint(2), records[0].ID)

	found, err := store.FindByDayMonth(ctx, 2, 1)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, uint(1), found.ID)

	missing, err := store.FindByDayMonth(ctx, 3, 1)
	require.NoError(t, err)
	assert.Nil(t, missing)

	inserted, err := store.Insert(ctx, &ephemeris.Record{Day: 2, Month: 1, Year: 2031, DisplayDate: "2/1/2031"})
	require.NoError(t, err)
	assert.Equal(t, uint(3), inserted.ID)
	assert.False(t, inserted.CreatedAt.IsZero())

	// The first record for the day still wins
	found, err = store.FindByDayMonth(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), found.ID)

	_, err = store.Insert(ctx, nil)
	assert.Error(t, err)
	assert.NoError(t, store.Close())
}

func TestInMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(&ephemeris.Record{Day: 1, Month: 1, Year: 2030, DisplayDate: "1/1/2030"})

	records, err := store.List(ctx)
	require.NoError(t, err)
	records[0].DisplayDate = "changed"

	found, err := store.FindByDayMonth(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, "1/1/2030", found.DisplayDate)
}

func TestInMemoryStoreThreadSafety(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.Insert(ctx, &ephemeris.Record{Day: i%28 + 1, Month: 1, Year: 2030})
			assert.NoError(t, err)
			_, err = store.List(ctx)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := store.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 20)
}

func TestInMemoryStoreBreaksTiesByID(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore(
		&ephemeris.Record{Day: 5, Month: 7, Year: 2030, DisplayDate: "5/7/2030"},
		&ephemeris.Record{Day: 1, Month: 1, Year: 2030, DisplayDate: "1/1/2030"},
		&ephemeris.Record{Day: 5, Month: 7, Year: 2030, DisplayDate: "5/7/2030"},
	)

	records, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []uint{2, 1, 3}, []uint{records[0].ID, records[1].ID, records[2].ID})
}
