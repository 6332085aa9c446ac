package tx

import (
	"context"
	"database/sql"
	"sync"
)

type ctxKey struct{}

type hooksKey struct{}

var txKey = ctxKey{}

type commitHooks struct {
	mu  sync.Mutex
	fns []func(context.Context)
}

func (h *commitHooks) add(fn func(context.Context)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fns = append(h.fns, fn)
}

func (h *commitHooks) run(ctx context.Context) {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()
	for _, fn := range fns {
		fn(ctx)
	}
}

// AfterCommit defers fn until the transaction opened by RunInTx commits.
// Hooks are dropped when it rolls back. Without such a transaction fn runs
// immediately.
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	if h, ok := ctx.Value(hooksKey{}).(*commitHooks); ok {
		h.add(fn)
		return
	}
	fn(ctx)
}

// WithTx stores a SQL transaction in context for downstream store usage.
func WithTx(ctx context.Context, tx *sql.Tx) context.Context {
	if tx == nil {
		return ctx
	}
	return context.WithValue(ctx, txKey, tx)
}

// From extracts a SQL transaction from context if present.
func From(ctx context.Context) (*sql.Tx, bool) {
	tx, ok := ctx.Value(txKey).(*sql.Tx)
	return tx, ok
}

// Querier is the subset shared by *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Pick returns the transaction carried by ctx, falling back to db.
func Pick(ctx context.Context, db *sql.DB) Querier {
	if t, ok := From(ctx); ok {
		return t
	}
	return db
}

// RunInTx executes fn inside a transaction bound to ctx. If ctx already
// carries a transaction, fn joins it and commit is left to the outer caller.
// AfterCommit hooks registered by fn run with ctx once the commit succeeds.
func RunInTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context) error) (err error) {
	if _, ok := From(ctx); ok {
		return fn(ctx)
	}
	t, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = t.Rollback()
		}
	}()
	hooks := &commitHooks{}
	txCtx := context.WithValue(WithTx(ctx, t), hooksKey{}, hooks)
	if err = fn(txCtx); err != nil {
		return err
	}
	if err = t.Commit(); err != nil {
		return err
	}
	hooks.run(ctx)
	return nil
}

// Runner binds RunInTx to a database so services can depend on the method
// without importing database/sql.
type Runner struct {
	DB *sql.DB
}

func (r Runner) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return RunInTx(ctx, r.DB, fn)
}
