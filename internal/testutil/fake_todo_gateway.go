// Package testutil provides in-memory collaborators for tests.
package testutil

import (
	"context"
	"sort"
	"sync"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/gateway/db"
	"todo-api/internal/domain/model"

	"github.com/google/uuid"
)

// FakeTodoGateway is an in-memory implementation of db.TodoGateway.
// Records are copied on the way in and out so callers cannot alias stored state.
type FakeTodoGateway struct {
	mu    sync.RWMutex
	todos map[string]entity.Todo

	// Error injection for testing
	FindByIDErr  error
	FindManyErr  error
	CountErr     error
	CreateErr    error
	CreateAllErr error
	UpdateErr    error
	PurgeErr     error

	// CreateAllFailAt makes CreateAll fail after storing that many items, then roll back
	CreateAllFailAt int

	FindManyCalls int
	UpdateCalls   int
}

var _ db.TodoGateway = (*FakeTodoGateway)(nil)

func NewFakeTodoGateway() *FakeTodoGateway {
	return &FakeTodoGateway{todos: make(map[string]entity.Todo), CreateAllFailAt: -1}
}

// Seed stores todo as is, assigning an id when it has none
func (f *FakeTodoGateway) Seed(todo entity.Todo) entity.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	if todo.ID == "" {
		todo.ID = uuid.New().String()
	}
	f.todos[todo.ID] = todo
	return todo
}

// Stored returns a copy of the stored todo
func (f *FakeTodoGateway) Stored(id string) (entity.Todo, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	todo, ok := f.todos[id]
	return todo, ok
}

// Len returns the number of stored todos, deleted ones included
func (f *FakeTodoGateway) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.todos)
}

func (f *FakeTodoGateway) FindByID(_ context.Context, id string) (*entity.Todo, error) {
	if f.FindByIDErr != nil {
		return nil, f.FindByIDErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	todo, ok := f.todos[id]
	if !ok {
		return nil, nil
	}
	return &todo, nil
}

func (f *FakeTodoGateway) FindMany(_ context.Context, filter model.TodoFilter, offset int, limit *int) ([]*entity.Todo, error) {
	f.mu.Lock()
	f.FindManyCalls++
	f.mu.Unlock()
	if f.FindManyErr != nil {
		return nil, f.FindManyErr
	}

	matched := f.matching(filter)
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if offset >= len(matched) {
		return []*entity.Todo{}, nil
	}
	matched = matched[offset:]
	if limit != nil && *limit < len(matched) {
		matched = matched[:*limit]
	}
	return matched, nil
}

func (f *FakeTodoGateway) Count(_ context.Context, filter model.TodoFilter) (int64, error) {
	if f.CountErr != nil {
		return 0, f.CountErr
	}
	return int64(len(f.matching(filter))), nil
}

func (f *FakeTodoGateway) Create(_ context.Context, todo *entity.Todo) error {
	if f.CreateErr != nil {
		return f.CreateErr
	}
	f.Seed(*todo)
	return nil
}

func (f *FakeTodoGateway) CreateAll(_ context.Context, todos []*entity.Todo) error {
	if f.CreateAllErr != nil && f.CreateAllFailAt < 0 {
		return f.CreateAllErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	stored := make([]string, 0, len(todos))
	for i, todo := range todos {
		if i == f.CreateAllFailAt {
			for _, id := range stored {
				delete(f.todos, id)
			}
			return f.CreateAllErr
		}
		f.todos[todo.ID] = *todo
		stored = append(stored, todo.ID)
	}
	return nil
}

func (f *FakeTodoGateway) Update(_ context.Context, todo *entity.Todo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	if f.UpdateErr != nil {
		return f.UpdateErr
	}

	existing, ok := f.todos[todo.ID]
	if !ok {
		return db.ErrTodoNotUpdated
	}
	existing.Title = todo.Title
	existing.Description = todo.Description
	existing.UpdatedAt = todo.UpdatedAt
	existing.DeletedAt = todo.DeletedAt
	existing.CompletedAt = todo.CompletedAt
	f.todos[todo.ID] = existing
	return nil
}

func (f *FakeTodoGateway) PurgeDeletedBefore(_ context.Context, before time.Time) (int64, error) {
	if f.PurgeErr != nil {
		return 0, f.PurgeErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	var purged int64
	for id, todo := range f.todos {
		if todo.DeletedAt != nil && todo.DeletedAt.Before(before) {
			delete(f.todos, id)
			purged++
		}
	}
	return purged, nil
}

func (f *FakeTodoGateway) matching(filter model.TodoFilter) []*entity.Todo {
	f.mu.RLock()
	defer f.mu.RUnlock()

	result := make([]*entity.Todo, 0)
	for _, todo := range f.todos {
		if filter.OwnerID != "" && todo.UserID != filter.OwnerID {
			continue
		}
		if !filter.IncludeDeleted && todo.DeletedAt != nil {
			continue
		}
		copied := todo
		result = append(result, &copied)
	}
	return result
}
