package llm

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when the provider answers without any choices
var ErrEmptyResponse = errors.New("no response from AI model")

// UpstreamError represents a failed call to the completion provider.
// StatusCode and Body are set when the provider answered with a non-2xx status.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
	Cause      error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s API error: %d - %s", e.Provider, e.StatusCode, e.Body)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s API error: %v", e.Provider, e.Cause)
	}
	return fmt.Sprintf("%s API error", e.Provider)
}

func (e *UpstreamError) Unwrap() error {
	return e.Cause
}
