package db

import (
	"testing"
	"todo-api/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestWhereClause(t *testing.T) {
	where, args := whereClause(model.TodoFilter{OwnerID: "u1"})
	assert.Equal(t, " WHERE user_id = $1 AND deleted_at IS NULL", where)
	assert.Equal(t, []any{"u1"}, args)

	where, args = whereClause(model.TodoFilter{OwnerID: "u1", IncludeDeleted: true})
	assert.Equal(t, " WHERE user_id = $1", where)
	assert.Equal(t, []any{"u1"}, args)

	where, args = whereClause(model.TodoFilter{IncludeDeleted: true})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestSelectTodos_ColumnOrder(t *testing.T) {
	assert.Equal(t,
		"SELECT id, user_id, title, description, created_at, updated_at, deleted_at, completed_at FROM todos",
		selectTodos)
}
