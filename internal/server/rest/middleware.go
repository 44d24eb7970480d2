package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/cloudstack/internal/common"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

type ctxKey string

const identityKey ctxKey = "identity"

const requestIDHeader = "X-Request-Id"

// IdentityFromContext returns the email stored by requireIdentity.
func IdentityFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(identityKey).(string)
	return email, ok && email != ""
}

// requireIdentity rejects requests without a valid bearer token before any
// handler or storage code runs.
func (s *Server) requireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email, err := s.resolver.Resolve(r.Header.Get(common.AuthorizationHeaderName))
		if err != nil {
			s.logger.Debug(r.Context(), "authentication failed", "error", err, "path", r.URL.Path)
			w.Header().Set("WWW-Authenticate", common.BearerScheme)
			problem(w, http.StatusUnauthorized, "Unauthorized", "could not validate credentials")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requestID takes X-Request-Id from the client or generates one, stores it
// where middleware.GetReqID finds it and echoes it back.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), middleware.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// accessLog writes one line per request.
func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		s.logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
