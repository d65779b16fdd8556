package cache

import (
	"context"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
)

// TodoListCache stores list results per owner, generation and pagination window.
// Invalidate moves the owner to a new generation, so pages stored under an older
// generation are never served again.
type TodoListCache interface {
	Generation(ctx context.Context, ownerID string) (int64, error)
	Get(ctx context.Context, ownerID string, generation int64, params model.ListTodosParams) (*model.Page[*entity.Todo], bool, error)
	Set(ctx context.Context, ownerID string, generation int64, page *model.Page[*entity.Todo]) error
	Invalidate(ctx context.Context, ownerID string) error
	Clear(ctx context.Context) error
	Health(ctx context.Context) model.ComponentHealthStatus
}
