package remote

import "context"

// RequestIDHeader carries a caller-chosen correlation id
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// WithRequestID attaches a correlation id that is sent with every request
// issued under ctx
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id set by WithRequestID, or ""
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
