package profile

import "errors"

// Submission
var (
	ErrSubmitInProgress = errors.New("a profile update is already being submitted")
	ErrNoChanges        = errors.New("no changes to submit")
	ErrSessionClosed    = errors.New("edit session closed")
	ErrEmptyResponse    = errors.New("backend returned no user record")
)

// Form entry
var (
	ErrBlankValue          = errors.New("value must not be blank")
	ErrDuplicateValue      = errors.New("value already added")
	ErrUnsupportedPlatform = errors.New("unsupported social platform")
	ErrIndexOutOfRange     = errors.New("index out of range")
)

// DefaultFailureMessage is shown when a failed submission carries no detail.
const DefaultFailureMessage = "Failed to update profile"

// DetailError is implemented by collaborator errors that carry a message the
// backend meant for the user.
type DetailError interface {
	error
	ErrorDetail() string
}

// FailureMessage extracts what to show for a failed submission: the backend's
// detail verbatim when there is one, else the error text, else a generic line.
func FailureMessage(err error) string {
	if err == nil {
		return ""
	}
	var de DetailError
	if errors.As(err, &de) && de.ErrorDetail() != "" {
		return de.ErrorDetail()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultFailureMessage
}
