package common

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"strings"

	"github.com/podlift/backend/pkg/errorx"
)

// IsUnavailable reports whether err means the store could not be reached, as
// opposed to the store rejecting the request.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}

	if errorx.Is(err, errorx.Unavailable) {
		return true
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	msg := err.Error()
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "database is closed") ||
		strings.Contains(msg, "broken pipe")
}

// StoreError converts a repository error into the errorx value returned to
// callers. Connectivity problems become Unavailable so the facade can fall
// back, everything else is hidden behind fallback.
func StoreError(err error, fallback errorx.Error) error {
	if IsUnavailable(err) {
		return errorx.New(errorx.Unavailable, "Service is temporarily unavailable")
	}

	return fallback
}
