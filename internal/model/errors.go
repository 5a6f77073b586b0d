package model

import (
	"errors"
	"fmt"
)

// Only validation and not-found errors surface to callers as request
// failures. Upstream timeouts and outages are absorbed into degraded
// sections; cache failures only cost the performance benefit.
var (
	ErrNotFound            = errors.New("article not found")
	ErrUpstreamTimeout     = errors.New("upstream deadline exceeded")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrCacheUnavailable    = errors.New("cache unavailable")
)

// ValidationError marks a malformed request. No partial processing happens
// after one is raised.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// IsValidation reports whether err is a request validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err means the article could not be resolved.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
