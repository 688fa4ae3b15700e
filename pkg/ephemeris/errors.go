package ephemeris

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse is returned when the provider output is not the expected JSON object
var ErrMalformedResponse = errors.New("malformed AI response")

// ValidationError reports caller supplied input that cannot be used
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ProviderError wraps a failure of the generation provider call itself
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("generation provider failed: %v", e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
