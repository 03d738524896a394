package employee

import (
	"fmt"
	"strings"

	"github.com/go-faster/errors"
)

var (
	ErrNotFound     = errors.New("employee not found")
	ErrDuplicateKey = errors.New("employee with this emp_id already exists")
)

// ValidationError lists the required fields missing from a create request.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// StorageError wraps any driver failure that is not otherwise classified.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
