package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/fitcoach/backend/internal/admin"
	"github.com/fitcoach/backend/internal/auth"
	"github.com/fitcoach/backend/internal/coaching"
	"github.com/fitcoach/backend/internal/trainers"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schemaSQL string

// Schema returns the DDL the repo expects. Every statement is idempotent.
func Schema() string {
	return schemaSQL
}

var (
	_ coaching.Store = (*Repo)(nil)
	_ trainers.Store = (*Repo)(nil)
	_ admin.Store    = (*Repo)(nil)
	_ auth.Store     = (*Repo)(nil)
)

// Repo is the Postgres backed store behind every service.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Migrate applies the schema.
func (r *Repo) Migrate(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// inTx runs fn in a transaction, committed when fn returns nil.
func (r *Repo) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	return fn(tx)
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
