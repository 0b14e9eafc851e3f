package api

import "fmt"

// Kind classifies a failed backend call.
type Kind int

const (
	// KindTransport means no usable response reached the client.
	KindTransport Kind = iota + 1
	// KindAuth means the server rejected the credentials or token.
	KindAuth
	// KindValidation means the server rejected the input; the server's
	// message is passed through verbatim.
	KindValidation
	// KindShape means the response did not match the expected contract.
	KindShape
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindValidation:
		return "validation"
	case KindShape:
		return "shape"
	}
	return "unknown"
}

// Error is the failure type returned by every Client call. Message carries
// the server-provided text for auth and validation failures; transport and
// shape failures carry no server text and callers should substitute an
// operation-specific generic message.
type Error struct {
	Kind    Kind
	Message string
	Status  int   // HTTP status, 0 when no response was received
	Err     error // Underlying cause, if any
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s failure: %s", e.Kind, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s failure: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s failure", e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// UserMessage returns the server message when the taxonomy allows passing it
// through, otherwise the supplied fallback.
func (e *Error) UserMessage(fallback string) string {
	if (e.Kind == KindAuth || e.Kind == KindValidation) && e.Message != "" {
		return e.Message
	}
	return fallback
}

// IsAuth reports whether err is an authentication-rejected API failure.
func IsAuth(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Kind == KindAuth
}

func transportError(err error) *Error {
	return &Error{Kind: KindTransport, Err: err}
}

func shapeError(status int, err error) *Error {
	return &Error{Kind: KindShape, Status: status, Err: err}
}
