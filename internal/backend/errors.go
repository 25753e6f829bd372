package backend

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

var (
	// ErrNetworkUnreachable covers transport failures: DNS, refused
	// connections, resets and timeouts.
	ErrNetworkUnreachable = errors.New("backend unreachable")

	// ErrBackendUnhealthy means the health endpoint answered with a status
	// other than "healthy".
	ErrBackendUnhealthy = errors.New("backend unhealthy")

	// ErrInvalidResponse means the body could not be decoded or failed
	// validation.
	ErrInvalidResponse = errors.New("invalid backend response")
)

// StatusError is a non-2xx response from the backend.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend %s: status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("backend %s: status %d: %s", e.Endpoint, e.StatusCode, e.Message)
}

// IsUnavailable reports whether err means the backend could not serve the
// request at all, as opposed to rejecting it.
func IsUnavailable(err error) bool {
	if errors.Is(err, ErrNetworkUnreachable) || errors.Is(err, ErrBackendUnhealthy) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode >= 500
}

// classifyTransport maps errors from http.Client.Do onto the taxonomy.
// Caller cancellation is passed through unchanged.
func classifyTransport(endpoint string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("backend %s: %w", endpoint, err)
	}

	var (
		urlErr *url.Error
		netErr net.Error
	)
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return fmt.Errorf("backend %s: %w: %w", endpoint, ErrNetworkUnreachable, err)
	}
	return fmt.Errorf("backend %s: %w", endpoint, err)
}
