package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/bookseller-api/internal/domain"
	"github.com/spec-kit/bookseller-api/internal/repository"
	apperrors "github.com/spec-kit/bookseller-api/pkg/util/errorutil"
)

// ResourceStore is the persistence surface for one entity. Lookups, Update
// and Delete return pgx.ErrNoRows when no row matches id.
type ResourceStore[T any, F any] interface {
	List(ctx context.Context) ([]T, error)
	GetByID(ctx context.Context, id int64) (*T, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, fields F) (int64, error)
	Update(ctx context.Context, id int64, fields F) error
	Delete(ctx context.Context, id int64) error
}

// Detacher nulls the foreign key of every row referencing parentID and
// reports how many rows changed.
type Detacher func(ctx context.Context, parentID int64) (int64, error)

// ResourceService runs CRUD for one entity, including detaching dependents
// before a delete.
type ResourceService[T any, F any] struct {
	resource   domain.Resource
	store      ResourceStore[T, F]
	tx         repository.Transactor
	dependents []Detacher
	merge      func(existing T, patch F) F
	logger     *zap.Logger
}

// ResourceOption customizes a ResourceService.
type ResourceOption[T any, F any] func(*ResourceService[T, F])

// WithDependents registers the detach steps run before deleting a row.
func WithDependents[T any, F any](dependents ...Detacher) ResourceOption[T, F] {
	return func(s *ResourceService[T, F]) {
		s.dependents = append(s.dependents, dependents...)
	}
}

// WithMerge switches updates to read-merge-write using merge.
func WithMerge[T any, F any](merge func(existing T, patch F) F) ResourceOption[T, F] {
	return func(s *ResourceService[T, F]) {
		s.merge = merge
	}
}

// NewResourceService constructs the service.
func NewResourceService[T any, F any](resource domain.Resource, store ResourceStore[T, F], tx repository.Transactor, logger *zap.Logger, opts ...ResourceOption[T, F]) *ResourceService[T, F] {
	s := &ResourceService[T, F]{
		resource: resource,
		store:    store,
		tx:       tx,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resource returns the entity this service manages.
func (s *ResourceService[T, F]) Resource() domain.Resource {
	return s.resource
}

// List returns every row in storage order. An empty table is a 404.
func (s *ResourceService[T, F]) List(ctx context.Context) ([]T, error) {
	items, err := s.store.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if len(items) == 0 {
		return nil, apperrors.NewNotFound(fmt.Sprintf("No %s found", s.resource.Collection))
	}
	return items, nil
}

// Create inserts a row and returns its id.
func (s *ResourceService[T, F]) Create(ctx context.Context, fields F) (int64, error) {
	id, err := s.store.Create(ctx, fields)
	if err != nil {
		return 0, apperrors.NewInternalError(err)
	}
	return id, nil
}

// Update rewrites the row. Without a merge function, omitted fields are
// written as their empty value. With one, the row is read under a lock so
// concurrent merges of the same row apply in turn.
func (s *ResourceService[T, F]) Update(ctx context.Context, id int64, fields F) error {
	var err error
	if s.merge == nil {
		err = s.store.Update(ctx, id, fields)
	} else {
		err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
			existing, err := s.store.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			return s.store.Update(ctx, id, s.merge(*existing, fields))
		})
	}
	return s.mapRowError(err)
}

// Delete detaches dependents and removes the row in one transaction. A
// missing row rolls the detach back.
func (s *ResourceService[T, F]) Delete(ctx context.Context, id int64) error {
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, detach := range s.dependents {
			n, err := detach(ctx, id)
			if err != nil {
				return err
			}
			if n > 0 {
				s.logger.Debug("detached dependents",
					zap.String("resource", s.resource.Collection),
					zap.Int64("id", id),
					zap.Int64("rows", n))
			}
		}
		return s.store.Delete(ctx, id)
	})
	return s.mapRowError(err)
}

// NotFoundMessage is the message for a missing row, e.g. "Author not found".
func (s *ResourceService[T, F]) NotFoundMessage() string {
	return s.resource.Name + " not found"
}

// SuccessMessage renders e.g. "Author added successfully".
func (s *ResourceService[T, F]) SuccessMessage(verb string) string {
	return fmt.Sprintf("%s %s successfully", s.resource.Name, strings.ToLower(verb))
}

func (s *ResourceService[T, F]) mapRowError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return apperrors.NewNotFound(s.NotFoundMessage())
	default:
		return apperrors.NewInternalError(err)
	}
}
