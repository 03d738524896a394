package constants

import (
	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"
)

type contextKey string

const (
	TxKey        contextKey = "tx"
	LoggerKey    contextKey = "logger"
	RequestIDKey contextKey = "requestID"
)

var (
	Validate = validator.New(validator.WithRequiredStructEnabled())
	Decoder  = form.NewDecoder()
)
