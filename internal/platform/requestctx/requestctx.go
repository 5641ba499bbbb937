// Package requestctx carries per-request identity through context so
// backend calls made deep in a module can act on behalf of the visitor.
package requestctx

import (
	"context"
	"net/http"
)

type backendCookiesContextKey struct{}

type sessionIDContextKey struct{}

// WithBackendCookies stores the visitor's backend cookies in context.
func WithBackendCookies(ctx context.Context, cookies []*http.Cookie) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	copied := make([]*http.Cookie, 0, len(cookies))
	for _, cookie := range cookies {
		if cookie == nil {
			continue
		}
		copied = append(copied, cookie)
	}
	return context.WithValue(ctx, backendCookiesContextKey{}, copied)
}

// BackendCookiesFromContext returns the backend cookies stored in context.
func BackendCookiesFromContext(ctx context.Context) []*http.Cookie {
	if ctx == nil {
		return nil
	}
	cookies, _ := ctx.Value(backendCookiesContextKey{}).([]*http.Cookie)
	return cookies
}

// WithSessionID stores the visitor session identifier in context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionIDContextKey{}, sessionID)
}

// SessionIDFromContext returns the visitor session identifier stored in context.
func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(sessionIDContextKey{}).(string)
	return value
}
