package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/kubev2v/qpcr-planner/pkg/requestid"
)

// RequestID takes the request ID from the X-Request-Id header, from chi's RequestID
// middleware, or generates a new one. The ID is stored in the request context through
// the requestid package and echoed back in the response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestid.Header)

		if requestID == "" {
			requestID = middleware.GetReqID(r.Context())
		}

		if requestID == "" {
			requestID = requestid.Generate()
		}

		w.Header().Set(requestid.Header, requestID)

		ctx := requestid.ToContext(r.Context(), requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
