package model

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
	"todo-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_IsByKind(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("update todo: %w", NewPersistenceError(cause))

	assert.ErrorIs(t, err, ErrPersistence)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)

	domainErr, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, FieldException, domainErr.Field)
}

func TestFailure(t *testing.T) {
	resp := Failure(NewNotFoundError())
	assert.Equal(t, []FieldError{{Field: "todo", Message: "Todo could not be found"}}, resp.Errors)
	assert.Nil(t, resp.Todo)
	assert.Nil(t, resp.Todos)

	resp = Failure(errors.New("boom"))
	assert.Equal(t, []FieldError{{Field: "exception", Message: "boom"}}, resp.Errors)

	resp = Failure(errors.Join(NewValidationError("title", "a"), NewValidationError("id", "b")))
	assert.Equal(t, []FieldError{{Field: "title", Message: "a"}, {Field: "id", Message: "b"}}, resp.Errors)

	resp = Failure(nil)
	assert.True(t, resp.HasErrors())
}

func TestTodoListResponse_EmptyIsNotNil(t *testing.T) {
	resp := TodoListResponse(nil, 0)

	assert.NotNil(t, resp.Todos)
	require.NotNil(t, resp.Total)
	assert.Zero(t, *resp.Total)
	assert.False(t, resp.HasErrors())
}

func TestAuthorize(t *testing.T) {
	assert.False(t, Authorize(""))
	assert.False(t, Authorize("", RoleUser))
	assert.True(t, Authorize(RoleUser))
	assert.True(t, Authorize(RoleAdmin, RoleUser, RoleAdmin))
	assert.False(t, Authorize(RoleUser, RoleAdmin))
}

func TestCallerFromContext(t *testing.T) {
	_, ok := CallerFromContext(context.Background())
	assert.False(t, ok)

	_, ok = CallerFromContext(WithCaller(context.Background(), Caller{Role: RoleUser}))
	assert.False(t, ok)

	caller, ok := CallerFromContext(WithCaller(context.Background(), Caller{UserID: "u1", Role: RoleAdmin}))
	assert.True(t, ok)
	assert.Equal(t, Caller{UserID: "u1", Role: RoleAdmin}, caller)
}

func TestTodoPatch_ApplyTo(t *testing.T) {
	description := "old"
	completed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	todo := &entity.Todo{ID: "1", UserID: "u1", Title: "title", Description: &description, CompletedAt: &completed}

	patch := TodoPatch{
		Title:       Value("new title"),
		CompletedAt: Null[time.Time](),
	}
	patch.ApplyTo(todo)

	assert.Equal(t, "new title", todo.Title)
	assert.Nil(t, todo.CompletedAt)
	require.NotNil(t, todo.Description)
	assert.Equal(t, "old", *todo.Description)
	assert.Nil(t, todo.DeletedAt)
	assert.Equal(t, "u1", todo.UserID)
}

func TestTodoPatch_ApplyToCopiesValues(t *testing.T) {
	deletedAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	patch := TodoPatch{DeletedAt: Field[time.Time]{Set: true, Value: &deletedAt}}
	todo := &entity.Todo{}

	patch.ApplyTo(todo)
	deletedAt = deletedAt.Add(time.Hour)

	require.NotNil(t, todo.DeletedAt)
	assert.Equal(t, 0, todo.DeletedAt.Hour())
}
