package bbc

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

type FetchErrorKind string

const (
	FetchTimeout    FetchErrorKind = "timeout"
	FetchStatus     FetchErrorKind = "status"
	FetchConnection FetchErrorKind = "connection"
)

// FetchError is a typed transport failure. Retry policy is the
// caller's choice, keyed off Kind.
type FetchError struct {
	Kind       FetchErrorKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FetchStatus:
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// AsFetchError unwraps err to a FetchError when one is in the chain.
func AsFetchError(err error) (*FetchError, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
