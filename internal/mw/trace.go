package mw

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/nikolayk812/storefront/internal/trace"
)

// Trace reuses a well-formed client trace id, falls back to chi's request id
// and mints a fresh one otherwise. The id is echoed on the response.
func Trace() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(trace.Header)
			if !trace.Valid(id) {
				id = middleware.GetReqID(r.Context())
			}
			if !trace.Valid(id) {
				id = trace.NewID()
			}

			w.Header().Set(trace.Header, id)
			next.ServeHTTP(w, r.WithContext(trace.With(r.Context(), id)))
		})
	}
}
