package loom

import (
	"context"
	"errors"

	"github.com/syssam/loom/dialect"
	"github.com/syssam/loom/schema"
)

// A Tx is a transactional unit of work. It mirrors the client's CRUD and
// query operations on a single connection-scoped transaction and is
// owned exclusively by that unit: it must not be shared across
// concurrent callers.
type Tx struct {
	tx      dialect.Tx
	dialect dialect.Dialect
}

// Tx starts and returns a new transaction. The caller owns commit and
// rollback; prefer RunInTx unless the transaction spans call sites.
func (c *Client) Tx(ctx context.Context) (*Tx, error) {
	if err := c.init(); err != nil {
		return nil, err
	}
	tx, err := c.driver.Tx(ctx)
	if err != nil {
		return nil, &StoreError{Op: "begin transaction", Err: err}
	}
	return &Tx{tx: tx, dialect: c.dialect}, nil
}

// RunInTx runs fn inside a transaction. It commits on a nil return and
// rolls back otherwise, re-signaling fn's original error. A panic inside
// fn rolls the transaction back and re-panics. The transaction is
// released on every exit path.
func (c *Client) RunInTx(ctx context.Context, fn func(tx *Tx) error) error {
	tx, err := c.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if v := recover(); v != nil {
			_ = tx.Rollback()
			panic(v)
		}
	}()
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return &RollbackError{Err: errors.Join(err, rerr)}
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return &StoreError{Op: "commit transaction", Err: err}
	}
	return nil
}

// Commit commits the transaction.
func (t *Tx) Commit() error { return t.tx.Commit() }

// Rollback discards the transaction.
func (t *Tx) Rollback() error { return t.tx.Rollback() }

// Insert runs an insert inside the transaction; see Client.Insert. The
// transaction is already scoped to one connection, so the last-insert-id
// query observes the insert without extra pinning.
func (t *Tx) Insert(ctx context.Context, m *schema.Model, e Entity) (int64, error) {
	return insertOn(ctx, t.tx, t.dialect, m, e)
}

// Update runs an update inside the transaction; see Client.Update.
func (t *Tx) Update(ctx context.Context, m *schema.Model, idColumn string, e Entity) (int64, error) {
	return updateOn(ctx, t.tx, t.dialect, m, idColumn, e)
}

// Delete runs a delete inside the transaction; see Client.Delete.
func (t *Tx) Delete(ctx context.Context, m *schema.Model, idColumn string, idValue any) (int64, error) {
	return deleteOn(ctx, t.tx, t.dialect, m, idColumn, idValue)
}

// Query runs caller-supplied SQL inside the transaction; see Client.Query.
func (t *Tx) Query(ctx context.Context, query string, args ...any) (*Rows, error) {
	return queryOn(ctx, t.tx, query, args)
}

// Exec runs caller-supplied SQL inside the transaction; see Client.Exec.
func (t *Tx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return execOn(ctx, t.tx, query, args)
}
