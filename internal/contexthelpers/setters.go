package contexthelpers

import (
	"context"
	"net/http"
)

func withValue(r *http.Request, key contextKey, v string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), key, v))
}

func SetCurrentPath(r *http.Request, currentPath string) *http.Request {
	return withValue(r, currentPathContextKey, currentPath)
}

func SetCSRFToken(r *http.Request, token string) *http.Request {
	return withValue(r, csrfTokenContextKey, token)
}

func SetCSPNonce(r *http.Request, nonce string) *http.Request {
	return withValue(r, cspNonceContextKey, nonce)
}

func SetRequestID(r *http.Request, id string) *http.Request {
	return withValue(r, requestIDContextKey, id)
}
