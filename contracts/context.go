package contracts

import "context"

// contextKey is a type for context keys to avoid collisions
type contextKey string

const denialCodeContextKey contextKey = "transflow:guard:denialCode"

// WithDefaultDenialCode returns a context in which guard denials that carry
// no explicit code surface the given code instead of DefaultGuardErrorCode.
// An empty code leaves the context unchanged.
func WithDefaultDenialCode(ctx context.Context, code string) context.Context {
	if code == "" {
		return ctx
	}
	return context.WithValue(ctx, denialCodeContextKey, code)
}

// DefaultDenialCode returns the denial code configured on the context, or
// DefaultGuardErrorCode when none is set.
func DefaultDenialCode(ctx context.Context) string {
	if code, ok := ctx.Value(denialCodeContextKey).(string); ok && code != "" {
		return code
	}
	return DefaultGuardErrorCode
}
