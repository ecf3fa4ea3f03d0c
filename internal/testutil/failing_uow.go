package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/planboard/internal/db"
)

// FailingExecUoW runs work in a real transaction but lets only the first
// Allow statements starting with Prefix through; the next one returns Err.
// Reads and other statements pass untouched.
type FailingExecUoW struct {
	DB     *sql.DB
	Prefix string
	Allow  int
	Err    error
}

func (u *FailingExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	guarded := &execLimiter{DBTX: tx, prefix: u.Prefix, allow: u.Allow, err: u.Err}
	if err := fn(ctx, guarded); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type execLimiter struct {
	db.DBTX
	prefix string
	allow  int
	seen   int
	err    error
}

func (l *execLimiter) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if strings.HasPrefix(strings.TrimSpace(query), l.prefix) {
		l.seen++
		if l.seen > l.allow {
			return nil, l.err
		}
	}
	return l.DBTX.ExecContext(ctx, query, args...)
}
