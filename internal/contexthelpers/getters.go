package contexthelpers

import (
	"context"
)

func value(ctx context.Context, key contextKey) string {
	v, ok := ctx.Value(key).(string)
	if !ok {
		return ""
	}
	return v
}

// CurrentPath is the URL path of the request being served.
func CurrentPath(ctx context.Context) string {
	return value(ctx, currentPathContextKey)
}

// CSRFToken is the masked token forms embed as the csrf_token field.
func CSRFToken(ctx context.Context) string {
	return value(ctx, csrfTokenContextKey)
}

// CSPNonce is the nonce the Content-Security-Policy header allows for inline and CDN scripts.
func CSPNonce(ctx context.Context) string {
	return value(ctx, cspNonceContextKey)
}

func RequestID(ctx context.Context) string {
	return value(ctx, requestIDContextKey)
}
