package llm

import (
	"encoding/json"
	"net/http"
)

// Provider implementations translate SDK failures into the types below so
// callers can branch with errors.As without knowing which vendor answered.

// ErrRateLimit is returned when the vendor answered 429.
type ErrRateLimit struct {
	Err error
}

func (e *ErrRateLimit) Error() string {
	if e.Err == nil {
		return "rate limit exceeded"
	}
	return "rate limit exceeded: " + e.Err.Error()
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers every other transport or API failure. Its
// message is the vendor's own text so it can be relayed to clients as is.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return e.Err.Error()
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrInvalidResponse carries content that failed to parse or did not match
// the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return "invalid LLM response: " + e.Err.Error()
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded holds the partial output of a truncated answer.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrNoOutput means the call succeeded but nothing usable came back:
// a refusal, a filtered answer or an empty message.
type ErrNoOutput struct {
	Reason string
}

func (e *ErrNoOutput) Error() string {
	if e.Reason == "" {
		return "LLM produced no output"
	}
	return "LLM produced no output: " + e.Reason
}

// classifyStatus wraps a failed SDK call according to the HTTP status the
// vendor returned. status is 0 when no response was received.
func classifyStatus(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
