package ephemeris

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ethanbaker/ephemeris/pkg/ephemeris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockDB creates a sqlmock database with automatic cleanup and expectation checking
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return db, mock
}

// newMockStore wraps a sqlmock connection in a gorm MySQL store
func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newMockDB(t)

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), gormConfig())
	require.NoError(t, err)

	return &Store{db: gdb}, mock
}

var recordColumnNames = []string{
	"id", "created_at", "day", "month", "year", "event", "display_date",
	"historical_day", "historical_month", "historical_year", "description",
}

func TestStoreFindByDayMonth(t *testing.T) {
	store, mock := newMockStore(t)
	created := time.Date(2030, 7, 4, 22, 1, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT \\* FROM `ephemeris` WHERE day = \\? AND month = \\?").
		WillReturnRows(sqlmock.NewRows(recordColumnNames).
			AddRow(3, created, 5, 7, 2029, "E", "5/7/2029", 5, 7, 1999, nil))

	got, err := store.FindByDayMonth(context.Background(), 5, 7)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, uint(3), got.ID)
	assert.Equal(t, "E", got.Title())
	assert.Equal(t, 1999, got.HistoricalYear)
	assert.Nil(t, got.Description)
	assert.True(t, created.Equal(got.CreatedAt))
}

func TestStoreFindByDayMonth_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `ephemeris`").
		WillReturnRows(sqlmock.NewRows(recordColumnNames))

	got, err := store.FindByDayMonth(context.Background(), 29, 2)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStoreFindByDayMonth_ErrorIsVerbatim(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `ephemeris`").
		WillReturnError(errors.New("Error 1146 (42S02): Table 'app.ephemeris' doesn't exist"))

	_, err := store.FindByDayMonth(context.Background(), 1, 1)
	require.Error(t, err)
	assert.Equal(t, "Error 1146 (42S02): Table 'app.ephemeris' doesn't exist", err.Error())
}

func TestStoreList(t *testing.T) {
	store, mock := newMockStore(t)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT \\* FROM `ephemeris` ORDER BY display_date ASC, id ASC$").
		WillReturnRows(sqlmock.NewRows(recordColumnNames).
			AddRow(2, now, 10, 1, 2030, "A", "10/1/2030", 10, 1, 1958, "first").
			AddRow(1, now, 2, 1, 2030, nil, "2/1/2030", 2, 1, 2030, nil))

	records, err := store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "10/1/2030", records[0].DisplayDate)
	require.NotNil(t, records[0].Description)
	assert.Equal(t, "first", *records[0].Description)
	assert.Nil(t, records[1].Event)
}

func TestStoreList_Error(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT \\* FROM `ephemeris`").WillReturnError(errors.New("connection refused"))

	_, err := store.List(context.Background())
	assert.EqualError(t, err, "connection refused")
}

func TestStoreInsert(t *testing.T) {
	store, mock := newMockStore(t)
	event, description := "E", "D"

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `ephemeris`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	got, err := store.Insert(context.Background(), &ephemeris.Record{
		Day: 5, Month: 7, Year: 2030, Event: &event, DisplayDate: "5/7/2030",
		HistoricalDay: 5, HistoricalMonth: 7, HistoricalYear: 1999, Description: &description,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.ID)
	assert.False(t, got.CreatedAt.IsZero())
	assert.Equal(t, "5/7/2030", got.DisplayDate)
}

func TestStoreInsert_ErrorIsVerbatim(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `ephemeris`").WillReturnError(errors.New("Error 1406 (22001): Data too long for column 'event' at row 1"))
	mock.ExpectRollback()

	_, err := store.Insert(context.Background(), &ephemeris.Record{Day: 5, Month: 7, Year: 2030, DisplayDate: "5/7/2030"})
	require.Error(t, err)
	assert.Equal(t, "Error 1406 (22001): Data too long for column 'event' at row 1", err.Error())

	_, err = store.Insert(context.Background(), nil)
	assert.Error(t, err)
}
