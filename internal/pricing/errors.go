package pricing

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable marks any failure reported by a candidate
// store. Concrete stores wrap their connectivity and query errors
// with it so callers can distinguish "store broke" from "no price".
var ErrStoreUnavailable = errors.New("price store unavailable")

// ResolutionError is the only failure the resolver itself raises. It
// always carries the originating cause and is never retried.
type ResolutionError struct {
	Cause error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("price resolution failed: %v", e.Cause)
}

func (e *ResolutionError) Unwrap() error {
	return e.Cause
}
