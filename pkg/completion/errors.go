package completion

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyChoices is returned when a response carries no choices.
var ErrEmptyChoices = errors.New("response contained no choices")

// EncodeError wraps a failure to serialize the outbound payload.
type EncodeError struct {
	Err error
}

func (e *EncodeError) Error() string { return fmt.Sprintf("encode request: %v", e.Err) }
func (e *EncodeError) Unwrap() error { return e.Err }

// TransportError covers connection, TLS, DNS and timeout failures.
type TransportError struct {
	Endpoint string
	Err      error
}

func (e *TransportError) Error() string {
	if e.Timeout() {
		return fmt.Sprintf("request to %s timed out: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("request to %s failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the request hit its deadline.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(e.Err, &te) && te.Timeout()
}

// APIError is a non-2xx reply from the server.
type APIError struct {
	StatusCode int
	Message    string
	Type       string
	// Body is the raw reply, truncated. Shown when Message is empty.
	Body string
}

func (e *APIError) Error() string {
	switch {
	case e.Message != "" && e.Type != "":
		return fmt.Sprintf("server returned %d: %s (%s)", e.StatusCode, e.Message, e.Type)
	case e.Message != "":
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	case e.Body != "":
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
}

// DecodeError is a 2xx body that is not a CompletionResponse.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response: %v (body: %s)", e.Err, e.Body)
}

func (e *DecodeError) Unwrap() error { return e.Err }
