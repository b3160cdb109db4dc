package client

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNotFound matches a ServerError with status 404.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized matches a ServerError with status 401 or 403.
	ErrUnauthorized = errors.New("unauthorized")
)

// NetworkError is a failure to reach the API at all.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("request failed: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError is a non-2xx response. Message is the server's own error
// text when it sent one.
type ServerError struct {
	StatusCode int
	Message    string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error: %s", http.StatusText(e.StatusCode))
}

// Is lets errors.Is match ErrNotFound and ErrUnauthorized by status.
func (e *ServerError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
	}
	return false
}

// IsUnavailable reports whether err is a network or server failure, the
// class of errors callers answer with a generic "try again later".
func IsUnavailable(err error) bool {
	var netErr *NetworkError
	var srvErr *ServerError
	return errors.As(err, &netErr) || errors.As(err, &srvErr)
}
