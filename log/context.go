package log

import "context"

// NoTraceID is reported for contexts that were never tagged
const NoTraceID int64 = -1

type traceIDKey struct{}

// PutTraceID tags ctx with traceID. Every entry logged with the
// returned context carries it
func PutTraceID(ctx context.Context, traceID int64) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// GetTraceID returns the trace ID ctx was tagged with, or NoTraceID
func GetTraceID(ctx context.Context) int64 {
	if ctx == nil {
		return NoTraceID
	}

	if traceID, ok := ctx.Value(traceIDKey{}).(int64); ok {
		return traceID
	}
	return NoTraceID
}
