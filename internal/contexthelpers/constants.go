// Package contexthelpers stores per-request values in the request context.
package contexthelpers

type contextKey string

const (
	currentPathContextKey = contextKey("currentPath")
	csrfTokenContextKey   = contextKey("csrfToken")
	cspNonceContextKey    = contextKey("cspNonce")
	requestIDContextKey   = contextKey("requestID")
)
