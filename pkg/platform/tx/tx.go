// Package tx wraps multi-statement database writes in a transaction so
// stores don't repeat begin/commit/rollback plumbing.
package tx

import (
	"context"
	"database/sql"
	"fmt"
)

// InTx runs fn inside a transaction. The transaction commits when fn returns
// nil and rolls back otherwise; fn's error comes back unwrapped so callers
// can match sentinels.
func InTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	t, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = t.Rollback()
	}()
	if err := fn(t); err != nil {
		return err
	}
	return t.Commit()
}
