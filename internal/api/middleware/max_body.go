package middleware

import (
	"context"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// BodyLimitRecorder counts requests answered with 413.
type BodyLimitRecorder interface {
	RecordRequestBodyTooLarge(ctx context.Context)
}

// MaxBody caps every request body at maxBytes. Reads past the cap fail with *http.MaxBytesError,
// which the JSON decoder surfaces and handlers answer with a 413 problem.
// A non-positive maxBytes disables the cap. recorder may be nil.
func MaxBody(maxBytes int64, recorder BodyLimitRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if maxBytes <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

			if recorder == nil {
				next.ServeHTTP(w, r)

				return
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if ww.Status() == http.StatusRequestEntityTooLarge {
				recorder.RecordRequestBodyTooLarge(r.Context())
			}
		})
	}
}
