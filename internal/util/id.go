package util

import "github.com/google/uuid"

// NewRequestID returns a unique id stamped on outgoing API requests so
// the backend can correlate client calls in its logs.
func NewRequestID() string {
	return uuid.NewString()
}
