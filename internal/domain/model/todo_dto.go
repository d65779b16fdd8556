package model

import (
	"time"
	"todo-api/internal/domain/entity"
)

// CreateTodoInput holds the caller supplied values of a new todo
type CreateTodoInput struct {
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Field is a patch value that distinguishes absent (Set false), explicit null
// (Set true, Value nil) and a concrete value.
type Field[T any] struct {
	Set   bool
	Value *T
}

// Value builds a Field set to v
func Value[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

// Null builds a Field explicitly set to null
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

// IsNull reports whether the field was explicitly set to null
func (f Field[T]) IsNull() bool {
	return f.Set && f.Value == nil
}

// TodoPatch enumerates the fields of a todo that can be changed after creation
type TodoPatch struct {
	Title       Field[string]
	Description Field[string]
	CompletedAt Field[time.Time]
	DeletedAt   Field[time.Time]
}

// ApplyTo merges the set fields of the patch into todo. Title is only
// replaced by a non-null value since the column is required.
func (p TodoPatch) ApplyTo(todo *entity.Todo) {
	if p.Title.Set && p.Title.Value != nil {
		todo.Title = *p.Title.Value
	}
	if p.Description.Set {
		todo.Description = copyPtr(p.Description.Value)
	}
	if p.CompletedAt.Set {
		todo.CompletedAt = copyPtr(p.CompletedAt.Value)
	}
	if p.DeletedAt.Set {
		todo.DeletedAt = copyPtr(p.DeletedAt.Value)
	}
}

func copyPtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

// ListTodosParams is the pagination window of a listing. A nil Limit returns every record.
type ListTodosParams struct {
	Limit  *int `json:"limit,omitempty"`
	Offset int  `json:"offset"`
}

// TodoFilter restricts the records returned by the todo gateway
type TodoFilter struct {
	OwnerID        string
	IncludeDeleted bool
}

// TodoEventType names a todo lifecycle transition
type TodoEventType string

const (
	TodoCreated   TodoEventType = "created"
	TodoDeleted   TodoEventType = "deleted"
	TodoCompleted TodoEventType = "completed"
	TodoReset     TodoEventType = "reset"
	TodoUpdated   TodoEventType = "updated"
)

// TodoEvent is published after every successful write
type TodoEvent struct {
	Type       TodoEventType `json:"type"`
	TodoID     string        `json:"todoId"`
	UserID     string        `json:"userId"`
	OccurredAt time.Time     `json:"occurredAt"`
}

// TodoImportMessage is the body of a bulk import queue message
type TodoImportMessage struct {
	UserID string            `json:"userId"`
	Todos  []CreateTodoInput `json:"todos"`
}
