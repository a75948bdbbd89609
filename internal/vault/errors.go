package vault

import (
	"errors"
	"fmt"
)

// APIError describes a non-200 response. It carries the status code and
// raw body so callers can tell write, search and delete failures apart
// without inspecting response shapes.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("vault: unexpected status %d: %s", e.StatusCode, e.Body)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}
