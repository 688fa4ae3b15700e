package ephemeris

import (
	"context"
	"fmt"
	"time"
)

/** Stored types for the ephemeris module */

// Record is a single historical technology fact attached to a calendar day
type Record struct {
	ID        uint      `json:"id"`         // Assigned by the store
	CreatedAt time.Time `json:"created_at"` // Assigned by the store

	Day   int `json:"day"`   // Day the fact is displayed for (1-31)
	Month int `json:"month"` // Month the fact is displayed for (1-12)
	Year  int `json:"year"`  // Year the fact was generated for

	Event       *string `json:"event"`        // Short title; nil when the provider omitted it
	DisplayDate string  `json:"display_date"` // Always "day/month/year", derived

	HistoricalDay   int `json:"historical_day"`   // Day the event actually happened
	HistoricalMonth int `json:"historical_month"` // Month the event actually happened
	HistoricalYear  int `json:"historical_year"`  // Year the event actually happened

	Description *string `json:"description,omitempty"`
}

// Title returns the event title, or a placeholder when none was stored
func (r *Record) Title() string {
	if r == nil || r.Event == nil || *r.Event == "" {
		return "(untitled)"
	}
	return *r.Event
}

// Date returns the display date of the record
func (r *Record) Date() Date {
	return Date{Day: r.Day, Month: r.Month, Year: r.Year}
}

// Date is a calendar day with a 1-based month
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// DateOf extracts the calendar date of t in t's own location
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Day: day, Month: int(month), Year: year}
}

// String formats the date as "day/month/year" without zero padding
func (d Date) String() string {
	return fmt.Sprintf("%d/%d/%d", d.Day, d.Month, d.Year)
}

// MonthName returns the English name of the month
func (d Date) MonthName() string {
	if d.Month < 1 || d.Month > 12 {
		return ""
	}
	return time.Month(d.Month).String()
}

// Time returns noon of the date in loc
func (d Date) Time(loc *time.Location) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 12, 0, 0, 0, loc)
}

// Validate checks that the date names a real calendar day
func (d Date) Validate() error {
	if d.Day == 0 || d.Month == 0 || d.Year == 0 {
		return &ValidationError{Message: "incomplete date fields"}
	}
	if d.Month < 1 || d.Month > 12 {
		return &ValidationError{Field: "month", Message: fmt.Sprintf("month %d out of range", d.Month)}
	}
	if DateOf(d.Time(time.UTC)) != d {
		return &ValidationError{Field: "day", Message: fmt.Sprintf("%s is not a calendar date", d)}
	}
	return nil
}

/** Collaborators */

// StoreInterface defines the storage operations the ephemeris workflow needs
type StoreInterface interface {
	// FindByDayMonth returns one record for the day-of-year, or nil when none exists
	FindByDayMonth(ctx context.Context, day, month int) (*Record, error)

	// List returns every record ordered ascending by the display_date string
	List(ctx context.Context) ([]*Record, error)

	// Insert persists a record and returns it with its assigned id and timestamp
	Insert(ctx context.Context, record *Record) (*Record, error)
}

// Provider is a text generation service. The response is treated as opaque text
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RandomSource picks an index in [0, n)
type RandomSource interface {
	IntN(n int) int
}

/** Generation results */

// Status is the terminal state of a generation call
type Status string

const (
	// StatusCreated means a new record was generated and stored
	StatusCreated Status = "created"

	// StatusDuplicate means a record already existed for the day and nothing was done
	StatusDuplicate Status = "duplicate"
)

// Result is the outcome of a generation call that did not fail
type Result struct {
	Status      Status    `json:"status"`
	Date        Date      `json:"date"`
	Record      *Record   `json:"ephemeris,omitempty"`
	GeneratedAt time.Time `json:"generated_at,omitzero"`
}

// Message returns the human readable summary of the result
func (r *Result) Message() string {
	if r.Status == StatusDuplicate {
		return fmt.Sprintf("Ephemeris for %s already exists", r.Date)
	}
	return "Ephemeris generated and inserted successfully"
}
