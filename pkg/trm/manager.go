package trm

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type txKey struct{}

func withTx(ctx context.Context, tx *sqlx.Tx) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// ExtractTx returns the transaction opened by Manager.Do, or nil outside of one.
func ExtractTx(ctx context.Context) *sqlx.Tx {
	tx, ok := ctx.Value(txKey{}).(*sqlx.Tx)
	if !ok {
		return nil
	}
	return tx
}

type Manager interface {
	// Do runs callback inside a transaction carried by ctx. A nested call
	// joins the outer transaction.
	Do(ctx context.Context, callback func(ctx context.Context) error) error
}

type Option func(*txManager)

func WithIsolation(level sql.IsolationLevel) Option {
	return func(m *txManager) {
		m.opts.Isolation = level
	}
}

// WithErrorMapper classifies errors from beginning and committing a
// transaction, e.g. into retryable store errors. Errors returned by the
// callback are passed through as they are.
func WithErrorMapper(mapErr func(error) error) Option {
	return func(m *txManager) {
		m.mapErr = mapErr
	}
}

type txManager struct {
	db     *sqlx.DB
	opts   sql.TxOptions
	mapErr func(error) error
}

func NewManager(db *sqlx.DB, opts ...Option) Manager {
	m := &txManager{
		db:     db,
		mapErr: func(err error) error { return err },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (t *txManager) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	if ExtractTx(ctx) != nil {
		return callback(ctx)
	}

	tx, err := t.db.BeginTxx(ctx, &t.opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", t.mapErr(err))
	}
	defer tx.Rollback()

	if err := callback(withTx(ctx, tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", t.mapErr(err))
	}
	return nil
}

type noopManager struct{}

// NewNoopManager runs callbacks without a transaction, for stores that have
// no transactional scope of their own.
func NewNoopManager() Manager {
	return noopManager{}
}

func (noopManager) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	return callback(ctx)
}
