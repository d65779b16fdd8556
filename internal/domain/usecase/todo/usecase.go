package todo

import (
	"context"
	"time"
	"todo-api/internal/domain/model"
)

// UseCase exposes the todo operations of the authenticated caller found in ctx.
// Every operation answers with an envelope; failures never escape as errors.
type UseCase interface {
	List(ctx context.Context, params model.ListTodosParams) model.TodoResponse
	Get(ctx context.Context, id string) model.TodoResponse
	Create(ctx context.Context, input model.CreateTodoInput) model.TodoResponse
	CreateMany(ctx context.Context, inputs []model.CreateTodoInput) model.TodoResponse
	Delete(ctx context.Context, id string) model.TodoResponse
	Complete(ctx context.Context, id string) model.TodoResponse
	Reset(ctx context.Context, id string) model.TodoResponse
	Update(ctx context.Context, id string, patch model.TodoPatch) model.TodoResponse

	// PurgeDeleted physically removes the todos soft deleted before now minus retention.
	// It is used by the retention job and is not reachable from the API.
	PurgeDeleted(ctx context.Context, retention time.Duration) (int64, error)
}

// Config holds the tunables of the todo use case
type Config struct {
	// MaxLimit caps the page size of a listing, 0 disables the cap
	MaxLimit int
	// EventsQueue receives lifecycle events, empty disables publishing
	EventsQueue string
	// Now is the clock, time.Now when nil
	Now func() time.Time
}
