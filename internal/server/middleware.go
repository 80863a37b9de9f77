package server

import (
	"bytes"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// requestLogger logs every request and its response. With logBodies set
// both bodies are included. At most maxBodyBytes of the request body is
// buffered and logged; the buffered head is stitched back in front of the
// unread remainder so the handler still sees the whole body and enforces
// its own limit.
func requestLogger(logger *zap.Logger, logBodies bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := middleware.GetReqID(r.Context())

			fields := []zap.Field{
				zap.String("request_id", reqID),
				zap.String("method", r.Method),
				zap.String("url", r.URL.String()),
				zap.Any("headers", r.Header),
			}
			if logBodies && r.Body != nil {
				head, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
				if err != nil {
					logger.Warn("failed to read request body", zap.String("request_id", reqID), zap.Error(err))
				}
				r.Body = struct {
					io.Reader
					io.Closer
				}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}

				truncated := len(head) > maxBodyBytes
				if truncated {
					head = head[:maxBodyBytes]
				}
				fields = append(fields, zap.String("body", string(head)), zap.Bool("body_truncated", truncated))
			}
			logger.Info("Request", fields...)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			var respBody bytes.Buffer
			if logBodies {
				ww.Tee(&respBody)
			}

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			fields = []zap.Field{
				zap.String("request_id", reqID),
				zap.Int("status", status),
				zap.Any("headers", ww.Header()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
			}
			if logBodies {
				fields = append(fields, zap.String("body", respBody.String()))
			}
			logger.Info("Response", fields...)
		})
	}
}
