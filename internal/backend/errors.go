package backend

import (
	"errors"
	"fmt"
)

// ErrUnreachable is returned when the request never produced an HTTP
// response (connection refused, DNS failure, cancelled context).
var ErrUnreachable = errors.New("inventory API unreachable")

// StatusError is returned for non-2xx responses. Message carries the
// server-supplied "message" field when the body was decodable JSON,
// otherwise it is empty.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("inventory API returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("inventory API returned status %d: %s", e.StatusCode, e.Message)
}

// ServerMessage extracts the server-supplied message from err, if err is a
// StatusError carrying one. The second return reports whether a message was
// found.
func ServerMessage(err error) (string, bool) {
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message, true
	}
	return "", false
}
