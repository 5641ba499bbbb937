// Package httpx provides HTTP middleware helpers used by web modules.
package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/eighthwonder/eighthwonder/internal/services/web/platform/errors"
)

// RequestIDHeader carries the correlation id between hops.
const RequestIDHeader = "X-Request-ID"

// Middleware wraps an HTTP handler.
type Middleware func(http.Handler) http.Handler

// Chain applies middleware in declaration order.
func Chain(handler http.Handler, middleware ...Middleware) http.Handler {
	if handler == nil {
		handler = http.NotFoundHandler()
	}
	wrapped := handler
	for idx := len(middleware) - 1; idx >= 0; idx-- {
		if middleware[idx] == nil {
			continue
		}
		wrapped = middleware[idx](wrapped)
	}
	return wrapped
}

// RequestID injects and echoes a request id for correlation.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := strings.TrimSpace(r.Header.Get(RequestIDHeader))
			if requestID == "" {
				requestID = "web-" + uuid.NewString()
				r.Header.Set(RequestIDHeader, requestID)
			}
			w.Header().Set(RequestIDHeader, requestID)
			next.ServeHTTP(w, r)
		})
	}
}

// RecoverPanic converts panics into HTTP 500 responses.
func RecoverPanic() Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if recovered := recover(); recovered != nil {
					requestFields(r).WithFields(log.Fields{
						"panic": fmt.Sprint(recovered),
						"stack": strings.TrimSpace(string(debug.Stack())),
					}).Error("panic recovered")
					w.WriteHeader(http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// statusRecorder captures the status written by downstream handlers.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	if s.status == 0 {
		s.status = status
	}
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(p []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	return s.ResponseWriter.Write(p)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (s *statusRecorder) Unwrap() http.ResponseWriter { return s.ResponseWriter }

// LogRequests logs one line per completed request.
func LogRequests() Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			started := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			entry := requestFields(r).WithFields(log.Fields{
				"status":      status,
				"duration_ms": time.Since(started).Milliseconds(),
			})
			if status >= http.StatusInternalServerError {
				entry.Warn("request failed")
				return
			}
			entry.Debug("request served")
		})
	}
}

func requestFields(r *http.Request) *log.Entry {
	fields := log.Fields{"method": "-", "path": "-", "request_id": "-"}
	if r != nil {
		fields["method"] = r.Method
		if r.URL != nil {
			fields["path"] = r.URL.Path
		}
		if rid := strings.TrimSpace(r.Header.Get(RequestIDHeader)); rid != "" {
			fields["request_id"] = rid
		}
		if sc := trace.SpanContextFromContext(r.Context()); sc.HasTraceID() {
			fields["trace_id"] = sc.TraceID().String()
		}
	}
	return log.WithFields(fields)
}

// WriteJSON writes a JSON response with the provided status code.
func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	if w == nil {
		return fmt.Errorf("response writer is required")
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// WriteJSONError writes a JSON error response with the given status code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, map[string]any{"error": message})
}

// FieldErrors maps form field names to validation messages.
type FieldErrors map[string][]string

// Add records one message for field.
func (f FieldErrors) Add(field, message string) {
	f[field] = append(f[field], message)
}

// Empty reports whether no field has errors.
func (f FieldErrors) Empty() bool { return len(f) == 0 }

// WriteFormErrors writes a 400 response listing per-field validation messages.
func WriteFormErrors(w http.ResponseWriter, message string, fields FieldErrors) error {
	return WriteJSON(w, http.StatusBadRequest, map[string]any{
		"error":       message,
		"form_errors": fields,
	})
}

// WriteError writes a JSON error response using typed web status mapping.
func WriteError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithFields(log.Fields{"status": status}).Warn("request error")
	}
	_ = WriteJSONError(w, status, apperrors.PublicMessage(err))
}

// RequestContext returns r.Context() with a nil-safe fallback to context.Background().
func RequestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}

// WriteRedirect writes a 302 redirect response.
func WriteRedirect(w http.ResponseWriter, r *http.Request, location string) {
	if w == nil {
		return
	}
	if r == nil {
		w.Header().Set("Location", location)
		w.WriteHeader(http.StatusFound)
		return
	}
	http.Redirect(w, r, location, http.StatusFound)
}

// ReadForm parses a urlencoded or JSON request body into a flat field map.
func ReadForm(r *http.Request) (map[string]string, error) {
	if r == nil {
		return nil, apperrors.E(apperrors.KindInvalidInput, "request is required")
	}
	fields := map[string]string{}
	if strings.HasPrefix(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
		var raw map[string]any
		decoder := json.NewDecoder(r.Body)
		decoder.UseNumber()
		if err := decoder.Decode(&raw); err != nil {
			return nil, apperrors.Wrap(apperrors.KindInvalidInput, "invalid json body", err)
		}
		for key, value := range raw {
			switch v := value.(type) {
			case nil:
			case string:
				fields[key] = v
			default:
				fields[key] = fmt.Sprint(v)
			}
		}
		return fields, nil
	}
	if err := r.ParseForm(); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInvalidInput, "invalid form body", err)
	}
	for key := range r.PostForm {
		fields[key] = r.PostForm.Get(key)
	}
	return fields, nil
}
