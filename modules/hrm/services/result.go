package services

import (
	"github.com/go-faster/errors"

	"github.com/iota-uz/emprecords/modules/hrm/domain/aggregates/employee"
)

type Status int

const (
	StatusOK Status = iota
	StatusNotFound
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNotFound:
		return "not_found"
	default:
		return "error"
	}
}

// Result carries the outcome of a service call. Err is set only when Status
// is StatusError or StatusNotFound.
type Result[T any] struct {
	Status Status
	Value  T
	Err    error
}

func ok[T any](v T) Result[T] {
	return Result[T]{Status: StatusOK, Value: v}
}

func resultOf[T any](v T, err error) Result[T] {
	switch {
	case err == nil:
		return ok(v)
	case errors.Is(err, employee.ErrNotFound):
		return Result[T]{Status: StatusNotFound, Err: err}
	default:
		return Result[T]{Status: StatusError, Err: err}
	}
}
