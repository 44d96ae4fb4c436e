package ado

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse reports a round trip that completed without a
// response body where one was expected. Distinct from a non-2xx
// status: there is nothing to inspect.
var ErrEmptyResponse = errors.New("empty response from server")

// StatusError is a non-2xx response. The raw body is preserved for
// inspection rather than parsed as work item data.
type StatusError struct {
	Code int
	Body []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("azure devops returned %d: %s", e.Code, e.Body)
}

// ShapeError is a response that parsed as JSON but lacks an expected
// key. The body is kept verbatim so the user can inspect it.
type ShapeError struct {
	Missing string
	Body    []byte
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("response missing %q: %s", e.Missing, e.Body)
}
