package httpapi

import "context"

type contextKey string

const (
	requestIDContextKey    contextKey = "request_id"
	capabilitiesContextKey contextKey = "client_capabilities"
)

func withRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

func requestIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(requestIDContextKey).(string)
	return value
}

func withCapabilities(ctx context.Context, c clientCapabilities) context.Context {
	return context.WithValue(ctx, capabilitiesContextKey, c)
}

// capabilitiesFromContext defaults to a desktop client with replay links.
func capabilitiesFromContext(ctx context.Context) clientCapabilities {
	c, ok := ctx.Value(capabilitiesContextKey).(clientCapabilities)
	if !ok {
		return clientCapabilities{ReplayLinks: true}
	}
	return c
}
