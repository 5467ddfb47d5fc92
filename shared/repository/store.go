package repository

import (
	"context"
	"errors"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/shared/dto"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// Store is the persistence contract shared by the sqlx and in-memory implementations.
type Store[T any] interface {
	Insert(ctx context.Context, model T) error
	Get(ctx context.Context, filter dto.FilterGroup, columns ...string) (T, error)
	GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup, columns ...string) ([]T, error)
	Exist(ctx context.Context, filter dto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter dto.FilterGroup) (int, error)
	Update(ctx context.Context, mod map[string]any, filter dto.FilterGroup) error
	Delete(ctx context.Context, filter dto.FilterGroup) error
}

// New returns a postgres-backed store, or an in-memory one when no connection is configured.
func New[T any](entityName, tableName, primaryColumn string, db *postgres.Connection, otl otel.Otel) Store[T] {
	if db == nil {
		return NewMemory[T](entityName, primaryColumn, otl)
	}

	repo := NewRepository[T](entityName, tableName, primaryColumn, db, otl)

	return &repo
}

// IsDuplicate reports whether err comes from a primary key or unique index collision in either store.
func IsDuplicate(err error) bool {
	if errors.Is(err, ErrDuplicateKey) {
		return true
	}

	var pqErr *pq.Error

	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}
