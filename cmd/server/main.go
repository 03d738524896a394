package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/go-faster/errors"

	"github.com/iota-uz/emprecords/internal/server"
	"github.com/iota-uz/emprecords/modules"
	"github.com/iota-uz/emprecords/pkg/application"
	"github.com/iota-uz/emprecords/pkg/commands/common"
	"github.com/iota-uz/emprecords/pkg/configuration"
	"github.com/iota-uz/emprecords/pkg/eventbus"
	"github.com/iota-uz/emprecords/pkg/logging"
	"github.com/iota-uz/emprecords/pkg/metrics"
	"github.com/iota-uz/emprecords/pkg/notify"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	err := run(conf, stop)
	conf.Unload()
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

// run serves until a signal arrives on stop or the server fails. Every
// resource it opens is released before it returns.
func run(conf *configuration.Configuration, stop <-chan os.Signal) error {
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.TempoURL,
		)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to Tempo at " + conf.OpenTelemetry.TempoURL)
	}

	pool, err := common.GetDatabasePool(context.Background(), conf.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	notifier := notify.New(conf.Notifications, logger.WithField("component", "notify"))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
		defer cancel()
		if err := notify.Close(ctx, notifier); err != nil {
			logger.WithError(err).Warn("notification queue not drained")
		}
	}()

	app := application.New(&application.ApplicationOptions{
		DB:         pool,
		EventBus:   eventbus.NewEventPublisher(logger),
		Logger:     logger,
		Notifier:   notifier,
		Migrations: application.NewMigrationManager(conf.Database.Opts, logger.WithField("component", "migrations")),
	})
	if err := modules.Load(app, modules.BuiltInModules(conf)...); err != nil {
		return errors.Wrap(err, "load modules")
	}

	if conf.MigrateOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := app.Migrations().Run(ctx)
		cancel()
		if err != nil {
			return errors.Wrap(err, "apply migrations")
		}
	}

	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	serverInstance := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- serverInstance.Start(conf.SocketAddress)
	}()
	logger.Infof("Listening on: %s", conf.Origin)

	var serveErr error
	select {
	case serveErr = <-errCh:
		if serveErr != nil {
			logger.WithError(serveErr).Error("server stopped")
		}
	case sig := <-stop:
		logger.WithField("signal", sig.String()).Info("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer cancel()
	if err := serverInstance.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("failed to shut down server")
	}
	return serveErr
}
