// Package postgres implements the persistence gateway on PostgreSQL via GORM.
// Each WithinTx call maps to one database transaction; reads that precede a
// dependent write take row locks with SELECT ... FOR UPDATE.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-adoption-server/internal/gateway"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var _ gateway.Gateway = (*Gateway)(nil)

// Gateway persists the adoption platform records in PostgreSQL.
type Gateway struct {
	db *gorm.DB
}

// NewGateway wires a PostgreSQL-backed gateway. Caller manages DB lifecycle
// and schema (see platform/migrations).
func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// WithinTx runs fn inside a database transaction.
func (g *Gateway) WithinTx(ctx context.Context, fn func(ctx context.Context, tx gateway.Tx) error) error {
	if err := g.ensureDB(); err != nil {
		return err
	}
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &txScope{db: tx})
	})
}

func (g *Gateway) ensureDB() error {
	if g == nil || g.db == nil {
		return errors.New("postgres gateway not configured")
	}
	return nil
}

type txScope struct {
	db *gorm.DB
}

func (t *txScope) Users() gateway.Users         { return usersStore{db: t.db} }
func (t *txScope) PetTypes() gateway.PetTypes   { return petTypesStore{db: t.db} }
func (t *txScope) Pets() gateway.Pets           { return petsStore{db: t.db} }
func (t *txScope) Adoptions() gateway.Adoptions { return adoptionsStore{db: t.db} }
func (t *txScope) Reviews() gateway.Reviews     { return reviewsStore{db: t.db} }

// translateError maps driver and GORM errors to gateway errors.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return gateway.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %w", gateway.ErrDuplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", gateway.ErrReference, err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %w", gateway.ErrDuplicate, err)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: %w", gateway.ErrReference, err)
		}
	}
	return err
}

// forUpdate adds a row lock to the next query.
func forUpdate(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
