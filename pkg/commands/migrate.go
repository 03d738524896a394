package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/go-faster/errors"

	"github.com/iota-uz/emprecords/pkg/application"
	"github.com/iota-uz/emprecords/pkg/configuration"
)

type MigrateDirection string

const (
	MigrateUp     MigrateDirection = "up"
	MigrateDown   MigrateDirection = "down"
	MigrateStatus MigrateDirection = "status"
)

func Migrate(ctx context.Context, direction MigrateDirection, out io.Writer) error {
	conf := configuration.Use()
	app, pool, err := bootstrap(ctx, conf)
	if err != nil {
		return err
	}
	defer pool.Close()
	return runMigrations(ctx, app.Migrations(), direction, out)
}

func runMigrations(ctx context.Context, m application.MigrationManager, direction MigrateDirection, out io.Writer) error {
	switch direction {
	case MigrateUp:
		return m.Run(ctx)
	case MigrateDown:
		return m.Rollback(ctx)
	case MigrateStatus:
		statuses, err := m.Status(ctx)
		if err != nil {
			return err
		}
		return writeStatus(out, statuses)
	default:
		return errors.Errorf("unknown migration direction %q", direction)
	}
}

func writeStatus(out io.Writer, statuses []application.MigrationStatus) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCHEMA\tVERSION\tSTATE\tAPPLIED AT\tFILE")
	for _, s := range statuses {
		state, appliedAt := "pending", "-"
		if s.Applied {
			state = "applied"
			appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n", s.Schema, s.Version, state, appliedAt, s.Path)
	}
	return tw.Flush()
}
