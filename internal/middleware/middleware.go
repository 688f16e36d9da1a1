// Package middleware holds the handler decorators the app stacks
// around its router: request logging, CORS, and cookie auth.
package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Wrap applies mws to h in order, so the last middleware given ends up
// outermost.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}
