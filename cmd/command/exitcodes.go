package main

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iota-uz/emprecords/pkg/commands"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitValidation = 2
	exitUsage      = 3
	exitDB         = 4
)

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var fixtureErr *commands.FixtureError
	if errors.As(err, &fixtureErr) {
		return exitValidation
	}
	var pgErr *pgconn.PgError
	var connErr *pgconn.ConnectError
	if errors.As(err, &pgErr) || errors.As(err, &connErr) {
		return exitDB
	}
	// cobra reports flag and argument problems as plain errors
	msg := err.Error()
	if strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") ||
		strings.HasPrefix(msg, "required flag") {
		return exitUsage
	}
	return exitFailure
}
