package middleware

import (
	"net/http"
	"strings"
)

type Middleware func(http.Handler) http.Handler

// Wrap applies mws so that the first one listed sees the request last.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}

// Mount serves h under prefix, stripping it from the request path.
func Mount(prefix string, h http.Handler) http.Handler {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return h
	}
	return http.StripPrefix(prefix, h)
}
