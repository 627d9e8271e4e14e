package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// snapshotTxOptions gives every statement of a read the same view of the
// table and forbids writes.
var snapshotTxOptions = pgx.TxOptions{
	IsoLevel:   pgx.RepeatableRead,
	AccessMode: pgx.ReadOnly,
}

type DB interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row

	// ReadSnapshot runs readFunc inside a read-only repeatable-read
	// transaction. The connection goes back to the pool before it returns.
	ReadSnapshot(ctx context.Context, readFunc func(DB) error) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

var (
	_ DB     = (*Client)(nil)
	_ Pinger = (*Client)(nil)
)

type Client struct {
	*pgxpool.Pool
}

// NewClient creates a new db client.
func NewClient(pool *pgxpool.Pool) *Client {
	return &Client{pool}
}

func (c *Client) ReadSnapshot(ctx context.Context, readFunc func(DB) error) error {
	tx, err := c.BeginTx(ctx, snapshotTxOptions)
	if err != nil {
		return fmt.Errorf("begin read snapshot: %w", err)
	}

	if err := readFunc(&txWrapper{Tx: tx}); err != nil {
		return errors.Join(err, rollback(ctx, tx))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("end read snapshot: %w", err)
	}

	return nil
}

func (c *Client) Ping(ctx context.Context) error {
	if err := c.Pool.Ping(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// rollback must release the connection even when ctx is already done.
func rollback(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(context.WithoutCancel(ctx))
	if err == nil || errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return fmt.Errorf("rollback read snapshot: %w", err)
}

type txWrapper struct {
	pgx.Tx
}

func (t *txWrapper) ReadSnapshot(_ context.Context, readFunc func(DB) error) error {
	return readFunc(t)
}
