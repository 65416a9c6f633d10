package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	service "github.com/okian/boardscore/internal/app"
	"github.com/okian/boardscore/pkg/metrics"
)

// HTTP status code constants.
const (
	statusBadRequest       = 400
	statusNotFound         = 404
	statusMethodNotAllowed = 405
	statusInternalError    = 500
)

// MetricsMiddleware wraps HTTP handlers to record Prometheus metrics.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Create a response writer wrapper to capture status code
		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		// Call the next handler
		next.ServeHTTP(wrapped, r)

		// Record metrics
		durationMs := float64(time.Since(start).Microseconds()) / 1000
		statusCodeStr := strconv.Itoa(wrapped.statusCode)

		// Record basic HTTP metrics
		metrics.RecordHTTPRequest(endpoint, r.Method, statusCodeStr)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, statusCodeStr, durationMs)

		// Record error metrics if status indicates an error
		if wrapped.statusCode >= statusBadRequest {
			errorType := errorKind(wrapped.err, wrapped.statusCode)
			severity := getErrorSeverity(wrapped.statusCode)
			metrics.RecordErrorByEndpoint(endpoint, r.Method, errorType)
			metrics.RecordErrorByType(errorType, severity)
		}
	}
}

// NoteError reports the error behind a failed response to MetricsMiddleware,
// which labels the error metrics with its sheet error kind. It does nothing
// when w is not wrapped by the middleware.
func NoteError(w http.ResponseWriter, err error) {
	if rw, ok := w.(*responseWriter); ok && err != nil {
		rw.err = err
	}
}

// errorKind names a failure after the sheet error behind it, falling back to
// the status code.
func errorKind(err error, statusCode int) string {
	switch {
	case errors.Is(err, service.ErrSheetNotFound):
		return "sheet_not_found"
	case errors.Is(err, service.ErrInvalidPlayer):
		return "invalid_player"
	case errors.Is(err, service.ErrInvalidRoute):
		return "invalid_route"
	case errors.Is(err, service.ErrUnknownParseMode):
		return "unknown_parse_mode"
	case errors.Is(err, service.ErrNotStarted):
		return "not_started"
	default:
		return getErrorType(statusCode)
	}
}

// getErrorType returns a standardized error type based on HTTP status code.
func getErrorType(statusCode int) string {
	switch {
	case statusCode >= statusInternalError:
		return "server_error"
	case statusCode == statusMethodNotAllowed:
		return "method_not_allowed"
	case statusCode == statusNotFound:
		return "not_found"
	case statusCode >= statusBadRequest:
		return "client_error"
	default:
		return "unknown"
	}
}

// getErrorSeverity returns error severity based on HTTP status code.
func getErrorSeverity(statusCode int) string {
	switch {
	case statusCode >= statusInternalError:
		return "high"
	case statusCode >= statusBadRequest:
		return "medium"
	default:
		return "low"
	}
}

// responseWriter wraps http.ResponseWriter to capture the status code and the
// error noted by the handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	err        error
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	if err != nil {
		return n, fmt.Errorf("failed to write response: %w", err)
	}
	return n, nil
}
