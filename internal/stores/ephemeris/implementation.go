package ephemeris

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethanbaker/ephemeris/pkg/ephemeris"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store handles storage and retrieval of ephemerides using MySQL
type Store struct {
	db *gorm.DB
}

var _ ephemeris.StoreInterface = (*Store)(nil)

// NewStore creates a new ephemeris store with MySQL connection
func NewStore(databaseURL string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}

	// Auto-migrate tables
	if err := store.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return store, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}
}

// migrate creates or updates the required database tables
func (s *Store) migrate() error {
	return s.db.AutoMigrate(&EphemerisModel{})
}

// FindByDayMonth returns the first record stored for a day and month, ignoring the year.
// Database errors are returned unwrapped so callers can surface the driver's message
func (s *Store) FindByDayMonth(ctx context.Context, day, month int) (*ephemeris.Record, error) {
	var model EphemerisModel
	result := s.db.WithContext(ctx).Where("day = ? AND month = ?", day, month).Order("id").Limit(1).Find(&model)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return model.toRecord(), nil
}

// List returns every record ordered by display date
func (s *Store) List(ctx context.Context) ([]*ephemeris.Record, error) {
	var models []EphemerisModel
	if err := s.db.WithContext(ctx).Order("display_date ASC, id ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	records := make([]*ephemeris.Record, len(models))
	for i := range models {
		records[i] = models[i].toRecord()
	}

	return records, nil
}

// Insert stores a new record and returns it with its id and creation time
func (s *Store) Insert(ctx context.Context, record *ephemeris.Record) (*ephemeris.Record, error) {
	if record == nil {
		return nil, errors.New("record cannot be nil")
	}

	model := modelFromRecord(record)
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return nil, err
	}

	return model.toRecord(), nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}
