package form

import (
	"github.com/agentstation/retroshelf/pkg/errors"
)

// Kind classifies a feedback message.
type Kind string

// Feedback kinds.
const (
	KindMuted   Kind = "muted"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Feedback is the status line shown under the form.
type Feedback struct {
	Message string
	Kind    Kind
}

// Class returns the CSS class for the feedback.
func (f Feedback) Class() string {
	switch f.Kind {
	case KindSuccess:
		return "text-success"
	case KindError:
		return "text-danger"
	default:
		return "text-secondary"
	}
}

// IsZero reports whether there is nothing to show.
func (f Feedback) IsZero() bool {
	return f.Message == ""
}

// Success builds a success feedback.
func Success(message string) Feedback {
	return Feedback{Message: message, Kind: KindSuccess}
}

// Muted builds a neutral feedback.
func Muted(message string) Feedback {
	return Feedback{Message: message, Kind: KindMuted}
}

// Failure builds an error feedback from err, preferring the user-facing
// message carried by validation and resource errors.
func Failure(err error) Feedback {
	return Feedback{Message: Message(err), Kind: KindError}
}

// Message returns the user-facing text of err.
func Message(err error) string {
	var verr *errors.ValidationError
	if errors.As(err, &verr) {
		return verr.Message
	}
	var resErr *errors.ResourceError
	if errors.As(err, &resErr) && resErr.Message != "" {
		return resErr.Message
	}
	return err.Error()
}
