package processor

import (
	"context"
	"testing"
	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/todo"
	"todo-api/internal/testutil"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func message(body string) *types.Message {
	return &types.Message{MessageId: aws.String("m-1"), Body: aws.String(body)}
}

func TestTodoImportProcessor_CreatesTodosForUser(t *testing.T) {
	gateway := testutil.NewFakeTodoGateway()
	processor := NewTodoImportProcessor(todo.NewTodoUseCase(gateway, nil, nil, todo.Config{}))

	err := processor.HandleMessage(context.Background(), message(`{"userId":"u7","todos":[{"title":"a"},{"title":"b","description":"d"}]}`))

	require.NoError(t, err)
	assert.Equal(t, 2, gateway.Len())
	count, err := gateway.Count(context.Background(), model.TodoFilter{OwnerID: "u7"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestTodoImportProcessor_Rejections(t *testing.T) {
	gateway := testutil.NewFakeTodoGateway()
	processor := NewTodoImportProcessor(todo.NewTodoUseCase(gateway, nil, nil, todo.Config{}))

	tests := []struct {
		name    string
		message *types.Message
		wantErr string
	}{
		{name: "nil message", message: nil, wantErr: "nil message"},
		{name: "invalid json", message: message(`{`), wantErr: "Invalid todo import message m-1"},
		{name: "missing user", message: message(`{"todos":[{"title":"a"}]}`), wantErr: "has no user"},
		{name: "empty batch", message: message(`{"userId":"u7","todos":[]}`), wantErr: "todos: At least one todo is required"},
		{name: "invalid item", message: message(`{"userId":"u7","todos":[{"title":"a"},{"title":" "}]}`), wantErr: "todos[1].title"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := processor.HandleMessage(context.Background(), tt.message)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
	assert.Zero(t, gateway.Len())
}

type mockTodoUseCase struct {
	mock.Mock
	todo.UseCase
}

func (m *mockTodoUseCase) CreateMany(ctx context.Context, inputs []model.CreateTodoInput) model.TodoResponse {
	return m.Called(ctx, inputs).Get(0).(model.TodoResponse)
}

func TestTodoImportProcessor_RunsAsImportedUser(t *testing.T) {
	useCase := new(mockTodoUseCase)
	useCase.On("CreateMany", mock.MatchedBy(func(ctx context.Context) bool {
		caller, ok := model.CallerFromContext(ctx)
		return ok && caller.UserID == "u9" && caller.Role == model.RoleUser
	}), []model.CreateTodoInput{{Title: "imported"}}).Return(model.TodoListResponse(nil, 1))

	err := NewTodoImportProcessor(useCase).HandleMessage(context.Background(), message(`{"userId":"u9","todos":[{"title":"imported"}]}`))

	require.NoError(t, err)
	useCase.AssertExpectations(t)
}
