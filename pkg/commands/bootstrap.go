package commands

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/emprecords/modules"
	"github.com/iota-uz/emprecords/pkg/application"
	"github.com/iota-uz/emprecords/pkg/commands/common"
	"github.com/iota-uz/emprecords/pkg/configuration"
	"github.com/iota-uz/emprecords/pkg/eventbus"
	"github.com/iota-uz/emprecords/pkg/notify"
)

// bootstrap builds an application with every built-in module loaded.
// Notifications are disabled for command-line runs.
func bootstrap(ctx context.Context, conf *configuration.Configuration) (application.Application, *pgxpool.Pool, error) {
	pool, err := common.GetDatabasePool(ctx, conf.Database)
	if err != nil {
		return nil, nil, err
	}
	logger := conf.Logger()
	app := application.New(&application.ApplicationOptions{
		DB:         pool,
		EventBus:   eventbus.NewEventPublisher(logger),
		Logger:     logger,
		Notifier:   notify.Nop(),
		Migrations: application.NewMigrationManager(conf.Database.Opts, logger.WithField("component", "migrations")),
	})
	if err := modules.Load(app, modules.BuiltInModules(conf)...); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return app, pool, nil
}
