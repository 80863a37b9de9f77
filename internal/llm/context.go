package llm

import "context"

// callTag is the set of labels a caller can hang on a context so the
// logging decorator can attribute a provider call.
type callTag int

const (
	tagPurpose callTag = iota
	tagRequestID
)

const defaultPurpose = "unknown"

func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, tagPurpose, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if purpose, _ := ctx.Value(tagPurpose).(string); purpose != "" {
		return purpose
	}
	return defaultPurpose
}

// WithRequestID ties provider calls to the inbound HTTP request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, tagRequestID, id)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(tagRequestID).(string)
	return id
}
