package composables

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/emprecords/pkg/constants"
)

var (
	ErrNoLogger = errors.New("logger not found")
)

// WithLogger returns a new context carrying the request-scoped logger.
func WithLogger(ctx context.Context, logger *logrus.Entry) context.Context {
	return context.WithValue(ctx, constants.LoggerKey, logger)
}

// UseLogger returns the logger from the context.
// Outside of a request a logger writing to the standard logrus logger is returned.
func UseLogger(ctx context.Context) *logrus.Entry {
	logger, ok := ctx.Value(constants.LoggerKey).(*logrus.Entry)
	if !ok || logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return logger
}

// UseRequestID returns the request id assigned by the logging middleware.
func UseRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(constants.RequestIDKey).(string)
	return id, ok
}

func UseQuery[T any](v T, r *http.Request) (T, error) {
	return v, constants.Decoder.Decode(v, r.URL.Query())
}

// UseJSON decodes the request body into v. An empty body is an error.
func UseJSON[T any](v T, r *http.Request) (T, error) {
	if r.Body == nil {
		return v, errors.New("request body is empty")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return v, errors.New("request body is empty")
		}
		return v, errors.Wrap(err, "decode request body")
	}
	return v, nil
}
