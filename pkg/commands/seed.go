package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/iota-uz/emprecords/modules/hrm/seed"
	"github.com/iota-uz/emprecords/modules/hrm/services"
	"github.com/iota-uz/emprecords/pkg/configuration"
)

// FixtureError reports a fixture file that could not be read or parsed.
type FixtureError struct {
	File string
	Err  error
}

func (e *FixtureError) Error() string {
	return e.File + ": " + e.Err.Error()
}

func (e *FixtureError) Unwrap() error {
	return e.Err
}

func SeedEmployees(ctx context.Context, file string, out io.Writer) error {
	fixtures, err := seed.LoadFile(file)
	if err != nil {
		return &FixtureError{File: file, Err: err}
	}

	conf := configuration.Use()
	app, pool, err := bootstrap(ctx, conf)
	if err != nil {
		return err
	}
	defer pool.Close()

	svc := app.Service(services.EmployeeService{}).(*services.EmployeeService)
	report, err := seed.Run(ctx, svc, fixtures, app.Logger())
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "created %d, skipped %d\n", report.Created, report.Skipped)
	return err
}
