package generator

import (
	"fmt"

	"verdicto/internal/domain"
)

// UpstreamError indicates the text-generation backend could not produce an answer,
// either because it was unreachable or because it returned a non-2xx status.
type UpstreamError struct {
	Err        error
	StatusCode int // 0 when the request never got a response
	Provider   string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s unreachable: %v", e.Provider, e.Err)
	}
	return fmt.Sprintf("%s returned status %d: %v", e.Provider, e.StatusCode, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is lets callers match any upstream failure with errors.Is(err, domain.ErrUpstreamFailed).
func (e *UpstreamError) Is(target error) bool {
	return target == domain.ErrUpstreamFailed
}

// NewUpstreamError creates an UpstreamError.
func NewUpstreamError(provider string, statusCode int, err error) *UpstreamError {
	return &UpstreamError{
		Err:        err,
		StatusCode: statusCode,
		Provider:   provider,
	}
}
