package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/voltswap/voltswap/internal/domain"
)

// Repos is the store access layer over PostgreSQL. It implements domain.Store.
type Repos struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repos { return &Repos{db: db} }

// Tx wraps one open transaction. Row locks taken by its ForUpdate loads are
// held until InTx commits or rolls back.
type Tx struct {
	tx *sqlx.Tx
}

// InTx runs fn inside a single transaction and commits only if fn returns nil.
func (r *Repos) InTx(ctx context.Context, fn func(tx domain.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.StorageError("begin transaction", err)
	}
	defer tx.Rollback()

	if err := fn(&Tx{tx: tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapError("commit transaction", err)
	}
	return nil
}

// Postgres error codes that indicate the transaction lost a race rather than
// hit an infrastructure fault.
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
)

func mapError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
			return domain.Conflictf("%s: concurrent modification", op)
		}
	}
	return domain.StorageError(op, err)
}
