// internal/app/features/errors/errors.go
package errors

import (
	"fmt"
	"net/http"

	"github.com/dalemusser/stratafolio/internal/app/system/accesslog"
	"github.com/dalemusser/stratafolio/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

// ErrorLogger logs handler errors and writes the matching JSON envelope.
type ErrorLogger struct {
	logger *zap.Logger
	// showDetail puts err.Error() into the envelope's "error" field.
	// Enabled outside prod.
	showDetail bool
}

// NewErrorLogger creates a new ErrorLogger.
func NewErrorLogger(logger *zap.Logger, showDetail bool) *ErrorLogger {
	return &ErrorLogger{logger: logger, showDetail: showDetail}
}

// Log logs an error with the given message and error.
func (e *ErrorLogger) Log(r *http.Request, msg string, err error, fields ...zap.Field) {
	all := append([]zap.Field{
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("method", r.Method),
		zap.String("request_id", accesslog.RequestID(r.Context())),
	}, fields...)
	e.logger.Error(msg, all...)
}

// Internal logs err and answers 500 with a generic message.
func (e *ErrorLogger) Internal(w http.ResponseWriter, r *http.Request, message string, err error) {
	e.Log(r, message, err)
	accesslog.SetError(r.Context(), "store", err)
	jsonutil.InternalError(w, message, e.detail(err))
}

func (e *ErrorLogger) detail(err error) string {
	if !e.showDetail || err == nil {
		return ""
	}
	return err.Error()
}

// Handler provides the router-level JSON error handlers.
type Handler struct {
	errLog *ErrorLogger
}

// NewHandler creates a new error Handler.
func NewHandler(errLog *ErrorLogger) *Handler {
	return &Handler{errLog: errLog}
}

type notFoundBody struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	RequestedPath string `json:"requestedPath"`
}

// NotFound answers unmatched routes with a 404 envelope naming the path.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	jsonutil.JSON(w, http.StatusNotFound, notFoundBody{
		Success:       false,
		Message:       "Route not found",
		RequestedPath: r.URL.Path,
	})
}

// MethodNotAllowed answers a known path with an unsupported method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	jsonutil.Error(w, http.StatusMethodNotAllowed, "Method not allowed", "")
}

// Recoverer turns a handler panic into a logged 500 envelope.
// http.ErrAbortHandler is re-raised so net/http can drop the connection.
func (h *Handler) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			err, ok := rec.(error)
			if !ok {
				err = fmt.Errorf("%v", rec)
			}
			h.errLog.Log(r, "panic recovered", err, zap.Stack("stack"))
			accesslog.SetError(r.Context(), "panic", err)
			jsonutil.InternalError(w, "Server error", h.errLog.detail(err))
		}()
		next.ServeHTTP(w, r)
	})
}
