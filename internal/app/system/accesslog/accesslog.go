// internal/app/system/accesslog/accesslog.go
package accesslog

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/stratafolio/internal/app/system/network"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type ctxKey int

const ctxKeyEntry ctxKey = iota

// HeaderRequestID carries the request id in and out.
const HeaderRequestID = "X-Request-ID"

// Config holds configuration for the access log middleware.
type Config struct {
	Logger *zap.Logger

	// ExcludePaths are path prefixes that are served but not logged.
	ExcludePaths []string
}

// DefaultConfig skips the probe endpoints.
func DefaultConfig(logger *zap.Logger) Config {
	return Config{
		Logger:       logger,
		ExcludePaths: []string{"/health", "/ready", "/readyz", "/livez", "/favicon.ico"},
	}
}

// entry is the per-request state handlers can annotate.
type entry struct {
	requestID  string
	errorClass string
	errorMsg   string
	fallback   bool
}

// Middleware assigns a request id (reusing a client-supplied X-Request-ID),
// echoes it in the response, and writes one zap line per request.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := strings.TrimSpace(r.Header.Get(HeaderRequestID))
			if requestID == "" || len(requestID) > 64 {
				requestID = uuid.New().String()
			}
			w.Header().Set(HeaderRequestID, requestID)

			e := &entry{requestID: requestID}
			r = r.WithContext(context.WithValue(r.Context(), ctxKeyEntry, e))

			path := r.URL.Path
			for _, prefix := range cfg.ExcludePaths {
				if strings.HasPrefix(path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}

			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			fields := []zap.Field{
				zap.String("request_id", requestID),
				zap.String("method", r.Method),
				zap.String("path", path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", status),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("ip", network.GetClientIP(r)),
				zap.String("user_agent", r.UserAgent()),
			}
			if e.fallback {
				fields = append(fields, zap.Bool("fallback", true))
			}
			if status >= 400 {
				class := e.errorClass
				if class == "" {
					class = classify(status)
				}
				fields = append(fields, zap.String("error_class", class))
				if e.errorMsg != "" {
					fields = append(fields, zap.String("error", e.errorMsg))
				}
			}

			if ce := cfg.Logger.Check(levelFor(status), "http request"); ce != nil {
				ce.Write(fields...)
			}
		})
	}
}

func classify(status int) string {
	switch {
	case status == http.StatusBadRequest:
		return "validation"
	case status == http.StatusUnauthorized:
		return "auth"
	case status == http.StatusNotFound:
		return "not_found"
	case status == http.StatusRequestEntityTooLarge:
		return "too_large"
	case status == http.StatusTooManyRequests:
		return "rate_limited"
	case status >= 500:
		return "internal"
	default:
		return "client_error"
	}
}

func levelFor(status int) zapcore.Level {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel
	case status >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// RequestID returns the id assigned to the current request.
func RequestID(ctx context.Context) string {
	if e, ok := ctx.Value(ctxKeyEntry).(*entry); ok {
		return e.requestID
	}
	return ""
}

// SetError attaches an error class and message to the request's log line.
func SetError(ctx context.Context, class string, err error) {
	e, ok := ctx.Value(ctxKeyEntry).(*entry)
	if !ok {
		return
	}
	e.errorClass = class
	if err != nil {
		e.errorMsg = err.Error()
	}
}

// MarkFallback flags the request as served from sample data.
func MarkFallback(ctx context.Context) {
	if e, ok := ctx.Value(ctxKeyEntry).(*entry); ok {
		e.fallback = true
	}
}
