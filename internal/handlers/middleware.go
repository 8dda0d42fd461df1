package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// requestLogger tags every request with an id and logs it once the handler
// returns. For /search that is after the stream closes, so the duration
// covers the whole fan-out.
func requestLogger(logger *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)

		logger.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"duration":   time.Since(start).String(),
		}).Info("Request completed")
	})
}
