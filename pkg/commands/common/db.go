package common

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iota-uz/emprecords/pkg/configuration"
)

// GetDatabasePool opens a pool sized by the DB_* settings.
func GetDatabasePool(ctx context.Context, opts configuration.DatabaseOptions) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(opts.ConnectionString())
	if err != nil {
		return nil, errors.Wrap(err, "parse database config")
	}
	if opts.MaxConns > 0 {
		cfg.MaxConns = opts.MaxConns
	}
	if opts.MaxConnIdle > 0 {
		cfg.MaxConnIdleTime = opts.MaxConnIdle
	}
	if opts.ConnectTimeout > 0 {
		cfg.ConnConfig.ConnectTimeout = opts.ConnectTimeout
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.ConnectTimeout)
		defer cancel()
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "db connect failed")
	}
	return pool, nil
}
