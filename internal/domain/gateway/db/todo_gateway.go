package db

import (
	"context"
	"errors"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

// ErrTodoNotUpdated is returned by Update when no row matched the todo id
var ErrTodoNotUpdated = errors.New("todo was not updated")

// TodoGateway is the record store of todos. FindByID returns (nil, nil) when
// the id does not exist. Soft deleted records are only filtered when the
// filter asks for it.
type TodoGateway interface {
	FindByID(ctx context.Context, id string) (*entity.Todo, error)
	FindMany(ctx context.Context, filter model.TodoFilter, offset int, limit *int) ([]*entity.Todo, error)
	Count(ctx context.Context, filter model.TodoFilter) (int64, error)

	Create(ctx context.Context, todo *entity.Todo) error
	CreateAll(ctx context.Context, todos []*entity.Todo) error
	Update(ctx context.Context, todo *entity.Todo) error

	PurgeDeletedBefore(ctx context.Context, before time.Time) (int64, error)
}
