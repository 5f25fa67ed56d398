package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"document-manager-api/internal/domain/auditlog"
)

// NotDeleted is the soft-delete predicate shared by every active-scoped query.
const NotDeleted = "delete_date IS NULL"

type (
	DBTX interface {
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	}

	// DB is satisfied by *pgxpool.Pool.
	DB interface {
		DBTX
		Begin(ctx context.Context) (pgx.Tx, error)
	}

	txKey struct{}
)

// Conn returns the transaction carried by ctx, or db when there is none.
func Conn(ctx context.Context, db DBTX) DBTX {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return db
}

func InTx(ctx context.Context) bool {
	_, ok := ctx.Value(txKey{}).(pgx.Tx)
	return ok
}

// ExecTx runs fn inside a transaction. When ctx already carries one, fn
// joins it and the outermost caller decides commit or rollback.
func ExecTx(ctx context.Context, db DB, fn func(ctx context.Context) error) error {
	if InTx(ctx) {
		return fn(ctx)
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("tx err: %w, rb err: %v", err, rbErr)
		}
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}

type Transactor struct {
	db DB
}

func NewTransactor(db DB) *Transactor { return &Transactor{db: db} }

func (t *Transactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return ExecTx(ctx, t.db, fn)
}

// Auditor records audit entries within the caller's transaction.
type Auditor interface {
	Create(ctx context.Context, l auditlog.AuditLog) error
}
