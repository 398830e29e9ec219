package mw

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/astral-cool/astral-web/internal/logger"
	"github.com/astral-cool/astral-web/internal/utils"
)

// Log writes one http_request line per request and hands handlers a logger
// tagged with the request id. Probe paths are logged at debug level.
func Log(log logger.Logger, trustProxy bool, quiet ...string) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(quiet))
	for _, p := range quiet {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			reqID := middleware.GetReqID(r.Context())

			reqLog := log.With(logger.String("request_id", reqID))
			next.ServeHTTP(ww, r.WithContext(logger.IntoContext(r.Context(), reqLog)))

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields := []logger.Field{
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", status),
				logger.Int("bytes", ww.BytesWritten()),
				logger.Duration("duration", time.Since(start)),
				logger.String("remote_ip", utils.ClientIP(r, trustProxy)),
				logger.String("user_agent", r.UserAgent()),
				logger.String("request_id", reqID),
			}
			if _, ok := skip[r.URL.Path]; ok {
				log.Debug("http_request", fields...)
				return
			}
			log.Info("http_request", fields...)
		})
	}
}
