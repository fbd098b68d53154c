// Package context carries per-request values shared by middleware, handlers
// and the logger without importing each other.
package context

import "context"

// requestIDKey is unexported and zero-sized, so no other package can collide
// with or overwrite the value.
type requestIDKey struct{}

func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID returns "" when no id was set or ctx is nil.
func GetRequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
