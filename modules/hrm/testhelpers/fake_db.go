package testhelpers

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
)

// FakeDB hands out FakeTx values and counts how each one ended.
type FakeDB struct {
	mu        sync.Mutex
	BeginErr  error
	CommitErr error
	begun     int
	committed int
	rolled    int
}

func (db *FakeDB) Begin(context.Context) (pgx.Tx, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if db.BeginErr != nil {
		return nil, db.BeginErr
	}
	db.begun++
	return &FakeTx{db: db}, nil
}

func (db *FakeDB) Counts() (begun, committed, rolledBack int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.begun, db.committed, db.rolled
}

// FakeTx satisfies pgx.Tx; only Commit and Rollback are implemented; any
// other method panics on the nil embedded interface.
type FakeTx struct {
	pgx.Tx
	db     *FakeDB
	closed bool
}

func (tx *FakeTx) Commit(context.Context) error {
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	if tx.closed {
		return pgx.ErrTxClosed
	}
	if tx.db.CommitErr != nil {
		return tx.db.CommitErr
	}
	tx.closed = true
	tx.db.committed++
	return nil
}

func (tx *FakeTx) Rollback(context.Context) error {
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	if tx.closed {
		return pgx.ErrTxClosed
	}
	tx.closed = true
	tx.db.rolled++
	return nil
}
