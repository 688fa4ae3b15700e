package ephemeris

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// GeneratedFact is the JSON object the provider is asked to return. Every field
// is optional; zero historical values count as absent
type GeneratedFact struct {
	Event           *string      `json:"event"`
	Description     *string      `json:"description"`
	HistoricalDay   *WholeNumber `json:"historical_day" validate:"omitempty,min=0,max=31"`
	HistoricalMonth *WholeNumber `json:"historical_month" validate:"omitempty,min=0,max=12"`
	HistoricalYear  *WholeNumber `json:"historical_year"`
	Significance    *string      `json:"significance"`
}

// WholeNumber decodes integers the way models tend to send them: as 5, 5.0 or "5".
// An empty string counts as 0; fractions and other text are rejected
type WholeNumber int

func (n *WholeNumber) UnmarshalJSON(b []byte) error {
	text := string(b)
	if unquoted, err := strconv.Unquote(text); err == nil {
		text = strings.TrimSpace(unquoted)
		if text == "" {
			*n = 0
			return nil
		}
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return fmt.Errorf("%s is not a whole number", b)
	}

	*n = WholeNumber(f)
	return nil
}

// ParseGeneratedFact decodes and validates a raw provider response. Anything other
// than a single well-formed JSON object yields an error wrapping ErrMalformedResponse
func ParseGeneratedFact(raw string) (GeneratedFact, error) {
	var fact GeneratedFact

	trimmed := bytes.TrimSpace([]byte(raw))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return fact, fmt.Errorf("%w: expected a JSON object", ErrMalformedResponse)
	}

	if err := json.Unmarshal(trimmed, &fact); err != nil {
		return GeneratedFact{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if err := validate.Struct(fact); err != nil {
		return GeneratedFact{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return fact, nil
}

// ToRecord builds the record to persist for date. The display fields always come
// from date; the description falls back to the significance and each historical
// field falls back to the matching display field on its own
func (f GeneratedFact) ToRecord(date Date) *Record {
	description := f.Description
	if description == nil || *description == "" {
		description = f.Significance
	}

	return &Record{
		Day:             date.Day,
		Month:           date.Month,
		Year:            date.Year,
		Event:           f.Event,
		DisplayDate:     date.String(),
		HistoricalDay:   intOr(f.HistoricalDay, date.Day),
		HistoricalMonth: intOr(f.HistoricalMonth, date.Month),
		HistoricalYear:  intOr(f.HistoricalYear, date.Year),
		Description:     description,
	}
}

func intOr(value *WholeNumber, fallback int) int {
	if value == nil || *value == 0 {
		return fallback
	}
	return int(*value)
}
