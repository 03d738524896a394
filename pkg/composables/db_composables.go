package composables

import (
	"context"
	"errors"

	"github.com/iota-uz/emprecords/pkg/constants"
	"github.com/iota-uz/emprecords/pkg/repo"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNoTx = errors.New("no transaction found in context")
	ErrNoDB = errors.New("no database handle provided")
)

// Beginner opens a transaction on a freshly acquired connection.
// *pgxpool.Pool and *pgx.Conn satisfy it.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

func WithTx(ctx context.Context, tx pgx.Tx) context.Context {
	return context.WithValue(ctx, constants.TxKey, tx)
}

func UseTx(ctx context.Context) (repo.Tx, error) {
	tx, ok := ctx.Value(constants.TxKey).(repo.Tx)
	if !ok || tx == nil {
		return nil, ErrNoTx
	}
	return tx, nil
}

// InTx runs fn inside a transaction. A transaction already present in ctx is
// reused; otherwise one is opened on db and committed when fn succeeds.
// The transaction is rolled back on error and on panic, so the underlying
// connection is always released.
func InTx(ctx context.Context, db Beginner, fn func(context.Context) error) (err error) {
	if existing, ok := ctx.Value(constants.TxKey).(pgx.Tx); ok && existing != nil {
		return fn(ctx)
	}
	if db == nil {
		return ErrNoDB
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if rErr := tx.Rollback(ctx); rErr != nil && !errors.Is(rErr, pgx.ErrTxClosed) {
			err = errors.Join(err, rErr)
		}
	}()

	if err := fn(WithTx(ctx, tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	committed = true
	return nil
}

func InTxResult[T any](ctx context.Context, db Beginner, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := InTx(ctx, db, func(txCtx context.Context) error {
		var innerErr error
		out, innerErr = fn(txCtx)
		return innerErr
	})
	return out, err
}
