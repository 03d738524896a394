package middleware

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/iota-uz/emprecords/pkg/composables"
	"github.com/iota-uz/emprecords/pkg/constants"
	"github.com/iota-uz/emprecords/pkg/httpapi"
)

type LoggerOptions struct {
	// Incoming request id; a uuid is generated when it is absent.
	RequestIDHeader string
	// Client address set by a proxy; RemoteAddr is used when it is absent.
	RealIPHeader string

	LogRequestBody bool
	MaxBodyLength  int
}

func DefaultLoggerOptions() LoggerOptions {
	return LoggerOptions{
		RequestIDHeader: "X-Request-ID",
		RealIPHeader:    "X-Real-IP",
		LogRequestBody:  true,
		MaxBodyLength:   512,
	}
}

type statusWriter struct {
	http.ResponseWriter
	statusCode    int
	statusWritten bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.statusWritten {
		w.statusCode = code
		w.statusWritten = true
		w.ResponseWriter.WriteHeader(code)
	}
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if !w.statusWritten {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// Status returns the HTTP status code
func (w *statusWriter) Status() int {
	if w.statusCode == 0 {
		return http.StatusOK
	}
	return w.statusCode
}

func (w *statusWriter) Flush() {
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := w.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("underlying ResponseWriter does not implement http.Hijacker")
}

func headerOr(r *http.Request, header, fallback string) string {
	if header != "" {
		if v := r.Header.Get(header); v != "" {
			return v
		}
	}
	return fallback
}

var tracer = otel.Tracer("emprecords-middleware")

func isMutating(method string) bool {
	return method == http.MethodPost ||
		method == http.MethodPut ||
		method == http.MethodPatch ||
		method == http.MethodDelete
}

// readBody returns the request body for logging and restores it for the
// handler. JSON bodies are logged parsed, anything else truncated.
func readBody(r *http.Request, maxLen int) (interface{}, error) {
	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, r.Body); err != nil {
		return nil, err
	}
	r.Body = io.NopCloser(bytes.NewReader(buf.Bytes()))
	if strings.Contains(strings.ToLower(r.Header.Get("Content-Type")), "application/json") {
		var parsed interface{}
		if err := json.Unmarshal(buf.Bytes(), &parsed); err == nil {
			return parsed, nil
		}
	}
	raw := buf.String()
	if maxLen > 0 && len(raw) > maxLen {
		raw = raw[:maxLen] + "..."
	}
	return raw, nil
}

// WithLogger assigns a request id, attaches a request-scoped logger and an
// http.request span to the context, logs request start and completion, and
// turns handler panics into a JSON 500.
func WithLogger(logger *logrus.Logger, opts LoggerOptions) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			requestID := headerOr(r, opts.RequestIDHeader, "")
			if requestID == "" {
				requestID = uuid.New().String()
			}
			realIP := headerOr(r, opts.RealIPHeader, r.RemoteAddr)

			fieldsLogger := logger.WithFields(logrus.Fields{
				"request-id": requestID,
				"path":       r.URL.Path,
				"method":     r.Method,
			})
			fieldsLogger.WithFields(logrus.Fields{
				"ip":         realIP,
				"user-agent": r.UserAgent(),
				"query":      r.URL.RawQuery,
			}).Info("request started")

			if opts.LogRequestBody && isMutating(r.Method) && r.Body != nil {
				body, err := readBody(r, opts.MaxBodyLength)
				if err != nil {
					fieldsLogger.WithError(err).Warn("failed to read request-body")
				} else {
					fieldsLogger.WithField("request-body", body).Debug("request-body captured")
				}
			}

			propagator := propagation.TraceContext{}
			ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(
				ctx,
				"http.request",
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.url", r.URL.String()),
					attribute.String("http.request_id", requestID),
					attribute.String("net.peer.ip", realIP),
				),
			)
			defer span.End()

			if spanContext := span.SpanContext(); spanContext.HasTraceID() {
				w.Header().Set("X-Trace-Id", spanContext.TraceID().String())
				fieldsLogger = fieldsLogger.WithField("trace-id", spanContext.TraceID().String())
			}
			w.Header().Set("X-Request-Id", requestID)

			ctx = context.WithValue(ctx, constants.RequestIDKey, requestID)
			ctx = composables.WithLogger(ctx, fieldsLogger)

			wrapped := &statusWriter{ResponseWriter: w}

			defer func() {
				if recovered := recover(); recovered != nil {
					fieldsLogger.WithFields(logrus.Fields{
						"panic":    recovered,
						"stack":    string(debug.Stack()),
						"status":   http.StatusInternalServerError,
						"duration": time.Since(start),
					}).Error("panic recovered in request handler")
					span.SetAttributes(attribute.Int("http.status_code", http.StatusInternalServerError))
					if !wrapped.statusWritten {
						_ = httpapi.WriteFailure(
							wrapped,
							http.StatusInternalServerError,
							"Internal server error",
							fmt.Errorf("%v", recovered),
						)
					}
				}
			}()

			next.ServeHTTP(wrapped, r.WithContext(ctx))

			statusCode := wrapped.Status()
			duration := time.Since(start)
			fieldsLogger.WithFields(logrus.Fields{
				"duration":     duration,
				"status-code":  statusCode,
				"status-class": statusCode / 100,
			}).Info("request completed")
			span.SetAttributes(
				attribute.Int64("http.request_duration_ms", duration.Milliseconds()),
				attribute.Int("http.status_code", statusCode),
			)
		})
	}
}
