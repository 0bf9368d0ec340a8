package common

import (
	"github.com/google/uuid"
)

// NewRequestID generates a correlation ID for an HTTP request.
func NewRequestID() string {
	return "req_" + uuid.New().String()
}

// NewSessionID generates a login session ID.
func NewSessionID() string {
	return "sess_" + uuid.New().String()
}
