package ephemeris

import (
	"time"

	"github.com/ethanbaker/ephemeris/pkg/ephemeris"
)

// EphemerisModel represents the database model for an ephemeris record
type EphemerisModel struct {
	ID        uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`

	Day   int `json:"day" gorm:"column:day;not null;index:idx_ephemeris_day_month"`
	Month int `json:"month" gorm:"column:month;not null;index:idx_ephemeris_day_month"`
	Year  int `json:"year" gorm:"column:year;not null"`

	Event       *string `json:"event" gorm:"column:event;size:500"`
	DisplayDate string  `json:"display_date" gorm:"column:display_date;not null;size:16;index"`

	HistoricalDay   int `json:"historical_day" gorm:"column:historical_day"`
	HistoricalMonth int `json:"historical_month" gorm:"column:historical_month"`
	HistoricalYear  int `json:"historical_year" gorm:"column:historical_year"`

	Description *string `json:"description" gorm:"column:description;type:text"`
}

// TableName sets the table name for GORM
func (EphemerisModel) TableName() string {
	return "ephemeris"
}

func modelFromRecord(r *ephemeris.Record) *EphemerisModel {
	return &EphemerisModel{
		Day:             r.Day,
		Month:           r.Month,
		Year:            r.Year,
		Event:           r.Event,
		DisplayDate:     r.DisplayDate,
		HistoricalDay:   r.HistoricalDay,
		HistoricalMonth: r.HistoricalMonth,
		HistoricalYear:  r.HistoricalYear,
		Description:     r.Description,
	}
}

func (m *EphemerisModel) toRecord() *ephemeris.Record {
	return &ephemeris.Record{
		ID:              m.ID,
		CreatedAt:       m.CreatedAt,
		Day:             m.Day,
		Month:           m.Month,
		Year:            m.Year,
		Event:           m.Event,
		DisplayDate:     m.DisplayDate,
		HistoricalDay:   m.HistoricalDay,
		HistoricalMonth: m.HistoricalMonth,
		HistoricalYear:  m.HistoricalYear,
		Description:     m.Description,
	}
}
