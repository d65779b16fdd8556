package resolver

import (
	"context"
	"encoding/json"
	"testing"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/todo"
	"todo-api/internal/testutil"

	"github.com/graph-gophers/graphql-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

type todoPayload struct {
	ID          string     `json:"id"`
	UserID      string     `json:"userId"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

type responsePayload struct {
	Errors []model.FieldError `json:"errors"`
	Todos  []todoPayload      `json:"todos"`
	Todo   *todoPayload       `json:"todo"`
	Total  *int               `json:"total"`
}

const todoFields = `errors { field message } total todo { id userId title description createdAt updatedAt deletedAt completedAt } todos { id title }`

func newTestSchema(t *testing.T) (*graphql.Schema, *testutil.FakeTodoGateway) {
	t.Helper()
	gateway := testutil.NewFakeTodoGateway()
	useCase := todo.NewTodoUseCase(gateway, nil, nil, todo.Config{MaxLimit: 100, Now: func() time.Time { return now }})
	schema, err := NewSchema(useCase)
	require.NoError(t, err)
	return schema, gateway
}

func exec(t *testing.T, schema *graphql.Schema, ctx context.Context, query string, variables map[string]interface{}) map[string]responsePayload {
	t.Helper()
	result := schema.Exec(ctx, query, "", variables)
	require.Empty(t, result.Errors)

	var data map[string]responsePayload
	require.NoError(t, json.Unmarshal(result.Data, &data))
	return data
}

func userCtx(userID string) context.Context {
	return model.WithCaller(context.Background(), model.Caller{UserID: userID, Role: model.RoleUser})
}

func TestSchema_CreateAndList(t *testing.T) {
	schema, _ := newTestSchema(t)
	ctx := userCtx("u1")

	data := exec(t, schema, ctx, `mutation($data: TodoData!) { createTodo(data: $data) { `+todoFields+` } }`,
		map[string]interface{}{"data": map[string]interface{}{"title": "write tests", "description": "resolver"}})

	created := data["createTodo"]
	assert.Empty(t, created.Errors)
	require.NotNil(t, created.Todo)
	assert.Equal(t, "u1", created.Todo.UserID)
	assert.Equal(t, "write tests", created.Todo.Title)
	require.NotNil(t, created.Todo.Description)
	assert.Equal(t, "resolver", *created.Todo.Description)
	assert.True(t, now.Equal(created.Todo.CreatedAt))
	assert.Nil(t, created.Todo.CompletedAt)

	data = exec(t, schema, ctx, `{ todos(limit: 10) { `+todoFields+` } }`, nil)
	listed := data["todos"]
	require.Len(t, listed.Todos, 1)
	assert.Equal(t, created.Todo.ID, listed.Todos[0].ID)
	require.NotNil(t, listed.Total)
	assert.Equal(t, 1, *listed.Total)
}

func TestSchema_CreateTodos(t *testing.T) {
	schema, gateway := newTestSchema(t)

	data := exec(t, schema, userCtx("u1"), `mutation {
		createTodos(data: { todos: [{ title: "a" }, { title: "b", completedAt: "2024-05-01T10:00:00Z" }] }) { `+todoFields+` }
	}`, nil)

	resp := data["createTodos"]
	assert.Empty(t, resp.Errors)
	assert.Len(t, resp.Todos, 2)
	assert.Equal(t, 2, *resp.Total)
	assert.Equal(t, 2, gateway.Len())

	data = exec(t, schema, userCtx("u1"), `mutation { createTodos(data: { todos: [{ title: "c" }, { title: "" }] }) { `+todoFields+` } }`, nil)
	require.Len(t, data["createTodos"].Errors, 1)
	assert.Equal(t, "todos[1].title", data["createTodos"].Errors[0].Field)
	assert.Nil(t, data["createTodos"].Todos)
	assert.Equal(t, 2, gateway.Len())
}

func TestSchema_UpdateDistinguishesNullFromAbsent(t *testing.T) {
	schema, gateway := newTestSchema(t)
	description := "keep"
	completed := now.Add(-time.Hour)
	stored := gateway.Seed(entity.Todo{UserID: "u1", Title: "title", Description: &description,
		CreatedAt: now.Add(-2 * time.Hour), UpdatedAt: now.Add(-2 * time.Hour), CompletedAt: &completed})

	data := exec(t, schema, userCtx("u1"), `mutation($id: ID!) { updateTodo(id: $id, data: { completedAt: null, title: "renamed" }) { `+todoFields+` } }`,
		map[string]interface{}{"id": stored.ID})

	resp := data["updateTodo"]
	assert.Empty(t, resp.Errors)
	require.NotNil(t, resp.Todo)
	assert.Equal(t, "renamed", resp.Todo.Title)
	assert.Nil(t, resp.Todo.CompletedAt)
	require.NotNil(t, resp.Todo.Description)
	assert.Equal(t, "keep", *resp.Todo.Description)
	assert.True(t, now.Equal(resp.Todo.UpdatedAt))

	data = exec(t, schema, userCtx("u1"), `mutation($id: ID!) { updateTodo(id: $id, data: { title: null }) { `+todoFields+` } }`,
		map[string]interface{}{"id": stored.ID})
	require.Len(t, data["updateTodo"].Errors, 1)
	assert.Equal(t, "title", data["updateTodo"].Errors[0].Field)
}

func TestSchema_LifecycleMutations(t *testing.T) {
	schema, gateway := newTestSchema(t)
	stored := gateway.Seed(entity.Todo{UserID: "u1", Title: "title", CreatedAt: now, UpdatedAt: now})
	vars := map[string]interface{}{"id": stored.ID}

	data := exec(t, schema, userCtx("u1"), `mutation($id: ID!) { completeTodo(id: $id) { `+todoFields+` } }`, vars)
	require.NotNil(t, data["completeTodo"].Todo.CompletedAt)

	data = exec(t, schema, userCtx("u1"), `mutation($id: ID!) { resetTodo(id: $id) { `+todoFields+` } }`, vars)
	assert.Nil(t, data["resetTodo"].Todo.CompletedAt)

	data = exec(t, schema, userCtx("u1"), `mutation($id: ID!) { deleteTodo(id: $id) { `+todoFields+` } }`, vars)
	require.NotNil(t, data["deleteTodo"].Todo.DeletedAt)

	data = exec(t, schema, userCtx("u1"), `{ todos { `+todoFields+` } }`, nil)
	assert.Empty(t, data["todos"].Todos)
	assert.Equal(t, 0, *data["todos"].Total)
}

func TestSchema_ErrorsAreReturnedInEnvelope(t *testing.T) {
	schema, gateway := newTestSchema(t)
	stored := gateway.Seed(entity.Todo{UserID: "u1", Title: "title", CreatedAt: now, UpdatedAt: now})

	data := exec(t, schema, userCtx("u2"), `query($id: ID!) { todo(id: $id) { `+todoFields+` } }`,
		map[string]interface{}{"id": stored.ID})
	assert.Equal(t, []model.FieldError{{Field: "exception", Message: "Forbidden"}}, data["todo"].Errors)
	assert.Nil(t, data["todo"].Todo)

	data = exec(t, schema, userCtx("u1"), `{ todo(id: "missing") { `+todoFields+` } }`, nil)
	assert.Equal(t, []model.FieldError{{Field: "todo", Message: "Todo could not be found"}}, data["todo"].Errors)

	data = exec(t, schema, context.Background(), `{ todos { `+todoFields+` } }`, nil)
	require.Len(t, data["todos"].Errors, 1)
	assert.Equal(t, "session", data["todos"].Errors[0].Field)
}

func TestSchema_RejectsInvalidQueries(t *testing.T) {
	schema, _ := newTestSchema(t)

	result := schema.Exec(userCtx("u1"), `mutation { createTodo(data: { description: "no title" }) { todo { id } } }`, "", nil)

	assert.NotEmpty(t, result.Errors)
}
