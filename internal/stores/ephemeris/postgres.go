package ephemeris

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/ethanbaker/ephemeris/pkg/ephemeris"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const recordColumns = `id, created_at, day, month, year, event, display_date, historical_day, historical_month, historical_year, description`

// PostgresStore handles storage and retrieval of ephemerides using PostgreSQL
type PostgresStore struct {
	db *sql.DB
}

var _ ephemeris.StoreInterface = (*PostgresStore)(nil)

// NewPostgresStore opens the database at databaseURL and applies pending migrations
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*ephemeris.Record, error) {
	var r ephemeris.Record
	err := row.Scan(
		&r.ID, &r.CreatedAt, &r.Day, &r.Month, &r.Year, &r.Event, &r.DisplayDate,
		&r.HistoricalDay, &r.HistoricalMonth, &r.HistoricalYear, &r.Description,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// FindByDayMonth returns the first record stored for a day and month, ignoring the year
func (s *PostgresStore) FindByDayMonth(ctx context.Context, day, month int) (*ephemeris.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+recordColumns+` FROM ephemeris WHERE day = $1 AND month = $2 ORDER BY id LIMIT 1`,
		day, month,
	)

	r, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

// List returns every record ordered by display date
func (s *PostgresStore) List(ctx context.Context) ([]*ephemeris.Record, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+recordColumns+` FROM ephemeris ORDER BY display_date ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []*ephemeris.Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	return records, rows.Err()
}

// Insert stores a new record and returns it with its id and creation time
func (s *PostgresStore) Insert(ctx context.Context, record *ephemeris.Record) (*ephemeris.Record, error) {
	if record == nil {
		return nil, errors.New("record cannot be nil")
	}

	stored := *record
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO ephemeris (day, month, year, event, display_date, historical_day, historical_month, historical_year, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		record.Day, record.Month, record.Year, record.Event, record.DisplayDate,
		record.HistoricalDay, record.HistoricalMonth, record.HistoricalYear, record.Description,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &stored, nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
