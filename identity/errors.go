package identity

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError represents a non-2xx response from the Identity Service.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// IsStatus returns true if err (or any wrapped error) is an HTTPError with
// the given status code.
func IsStatus(err error, code int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == code
	}
	return false
}

// IsAuthError reports whether err is an authentication rejection: bad
// credentials on login, or an expired/invalid bearer token elsewhere. This
// is the signal that triggers the session layer's self-heal logout.
func IsAuthError(err error) bool {
	return IsStatus(err, http.StatusUnauthorized) || IsStatus(err, http.StatusForbidden)
}
