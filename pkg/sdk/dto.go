package sdk

import (
	"time"

	"github.com/ethanbaker/api/pkg/api_types"
	"github.com/ethanbaker/ephemeris/pkg/ephemeris"
)

// ApiResponse represents a standard API response structure
type ApiResponse[T any] struct {
	Status  api_types.StatusType `json:"status"`          // Status message
	Code    int                  `json:"code"`            // Status code
	Message string               `json:"message"`         // Human-readable message
	Data    T                    `json:"data,omitempty"`  // Optional data field for successful responses
	Error   any                  `json:"error,omitempty"` // Optional errors field for error responses
}

// AsGinResponse converts the ApiResponse to a format suitable for Gin framework
func (r ApiResponse[T]) AsGinResponse() (int, any) {
	return r.Code, r
}

func NewSuccess(message string) ApiResponse[any] {
	return ApiResponse[any]{
		Status:  api_types.StatusSuccess,
		Code:    200,
		Message: message,
	}
}

func NewSuccessResponse[T any](message string, data T) ApiResponse[T] {
	return ApiResponse[T]{
		Status:  api_types.StatusSuccess,
		Code:    200,
		Message: message,
		Data:    data,
	}
}

func NewErrorResponse(code int, message string, err any) ApiResponse[any] {
	// Errors do not marshal to anything useful, so keep their message
	if e, ok := err.(error); ok {
		err = e.Error()
	}

	return ApiResponse[any]{
		Status:  api_types.StatusError,
		Code:    code,
		Message: message,
		Error:   err,
	}
}

/** Ephemeris module DTOs */

// RefreshResponse is returned after the catalog has been reloaded from the store
type RefreshResponse struct {
	Count    int       `json:"count"`
	LoadedAt time.Time `json:"loaded_at"`
}

// GenerateRequest is the body of the relay endpoint. Day, month and year are required
type GenerateRequest struct {
	TargetDate string `json:"targetDate,omitempty"`
	Day        int    `json:"day,omitempty"`
	Month      int    `json:"month,omitempty"`
	Year       int    `json:"year,omitempty"`
}

// HasDate reports whether every date field is set
func (r *GenerateRequest) HasDate() bool {
	return r.Day != 0 && r.Month != 0 && r.Year != 0
}

// GeneratorRequest is the optional body of the generator entrypoint. Without a
// complete date the entrypoint generates tomorrow's ephemeris
type GeneratorRequest struct {
	TargetDate string `json:"targetDate,omitempty"`
	Day        int    `json:"day,omitempty"`
	Month      int    `json:"month,omitempty"`
	Year       int    `json:"year,omitempty"`
}

// Date returns the requested date, or false when it is incomplete
func (r *GeneratorRequest) Date() (ephemeris.Date, bool) {
	if r == nil || r.Day == 0 || r.Month == 0 || r.Year == 0 {
		return ephemeris.Date{}, false
	}
	return ephemeris.Date{Day: r.Day, Month: r.Month, Year: r.Year}, true
}

// GeneratorResponse is the body returned by the generator entrypoint. Created
// results carry the record, duplicates carry the date, failures carry error
type GeneratorResponse struct {
	Message     string            `json:"message,omitempty"`
	Ephemeris   *ephemeris.Record `json:"ephemeris,omitempty"`
	GeneratedAt time.Time         `json:"generated_at,omitzero"`
	Date        string            `json:"date,omitempty"`

	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}

// NewGeneratorResponse converts a generation result to its wire form
func NewGeneratorResponse(res *ephemeris.Result) *GeneratorResponse {
	if res.Status == ephemeris.StatusDuplicate {
		return &GeneratorResponse{Message: res.Message(), Date: res.Date.String()}
	}

	return &GeneratorResponse{
		Message:     res.Message(),
		Ephemeris:   res.Record,
		GeneratedAt: res.GeneratedAt,
	}
}

// ErrorResponse is the bare error body of the relay and generator endpoints
type ErrorResponse struct {
	Error     string    `json:"error"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
