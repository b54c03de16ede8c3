package middleware

import (
	"context"
	"mytodos/shared/constant"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
)

// RequestID reuses the caller's X-Request-ID or mints a new one, echoes it back
// and stores it on the request context.
func (a *appMiddleware) RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(constant.RequestHeaderRequestID)
		if requestID == constant.Empty {
			requestID = uuid.NewString()
		}

		w.Header().Set(constant.RequestHeaderRequestID, requestID)

		ctx := context.WithValue(r.Context(), constant.ContextKeyRequestID, requestID)

		zerolog.Ctx(ctx).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str(string(constant.ContextKeyRequestID), requestID)
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logging attaches a request scoped logger carrying the request id and writes
// one access line per request.
func (a *appMiddleware) Logging(next http.Handler) http.Handler {
	access := hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		event := hlog.FromRequest(r).Info()
		if status >= http.StatusInternalServerError {
			event = hlog.FromRequest(r).Error()
		}

		event.
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request handled")
	})

	return hlog.NewHandler(log.Logger)(
		hlog.RemoteAddrHandler("ip")(
			hlog.UserAgentHandler("user_agent")(
				a.RequestID(access(next)),
			),
		),
	)
}

// RequestIDFromContext returns the id set by RequestID, or an empty string.
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(constant.ContextKeyRequestID).(string)

	return requestID
}
