package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoData is returned when a 2xx response carries no user record.
var ErrNoData = errors.New("no data in response")

// TransportError is a failed call to the backend: either a non-2xx response
// (Status set) or a request that never got one (Err set).
type TransportError struct {
	Op     string // e.g. "PATCH /auth/me"
	Status int
	Detail string // the backend's "detail" message, verbatim
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	switch {
	case e.Status != 0 && e.Detail != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Detail)
	case e.Status != 0 && e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// ErrorDetail exposes the backend message for display.
func (e *TransportError) ErrorDetail() string { return e.Detail }

// parseDetail pulls the user-facing message out of an error body. The backend
// sends {"detail": "..."}; a non-string detail is kept as JSON text.
func parseDetail(body []byte) string {
	var payload struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if len(payload.Detail) > 0 && string(payload.Detail) != "null" {
		var s string
		if err := json.Unmarshal(payload.Detail, &s); err == nil {
			return s
		}
		return strings.TrimSpace(string(payload.Detail))
	}
	return payload.Message
}
