// Package requestcontext provides HTTP-independent accessors for
// request-scoped values set by middleware and consumed by services. Keeping
// it free of net/http lets services import only what they need.
package requestcontext

import "context"

type (
	requestIDKey struct{}
	callerIDKey  struct{}
)

// WithRequestID stores the correlation id for this request.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the correlation id, or "" when none was set.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// WithCallerID stores the authenticated caller identity.
func WithCallerID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, callerIDKey{}, id)
}

// CallerID returns the authenticated caller identity, or "" for anonymous.
func CallerID(ctx context.Context) string {
	id, _ := ctx.Value(callerIDKey{}).(string)
	return id
}
