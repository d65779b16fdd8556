package resolver

import (
	"context"
	"time"
	"todo-api/internal/domain/model"
	"todo-api/internal/domain/usecase/todo"

	"github.com/graph-gophers/graphql-go"
)

// Resolver is the root of the Query and Mutation types
type Resolver struct {
	todoUseCase todo.UseCase
}

func NewResolver(todoUseCase todo.UseCase) *Resolver {
	return &Resolver{todoUseCase: todoUseCase}
}

type TodoData struct {
	Title       string
	Description *string
	CompletedAt *graphql.Time
}

type CreateTodosData struct {
	Todos []TodoData
}

type UpdateTodoData struct {
	Title       graphql.NullString
	Description graphql.NullString
	CompletedAt graphql.NullTime
	DeletedAt   graphql.NullTime
}

func (r *Resolver) Todos(ctx context.Context, args struct {
	Limit  *int32
	Offset *int32
}) *TodoResponseResolver {
	params := model.ListTodosParams{}
	if args.Limit != nil {
		limit := int(*args.Limit)
		params.Limit = &limit
	}
	if args.Offset != nil {
		params.Offset = int(*args.Offset)
	}
	return newTodoResponseResolver(r.todoUseCase.List(ctx, params))
}

func (r *Resolver) Todo(ctx context.Context, args struct{ ID graphql.ID }) *TodoResponseResolver {
	return newTodoResponseResolver(r.todoUseCase.Get(ctx, string(args.ID)))
}

func (r *Resolver) CreateTodo(ctx context.Context, args struct{ Data TodoData }) *TodoResponseResolver {
	return newTodoResponseResolver(r.todoUseCase.Create(ctx, args.Data.toInput()))
}

func (r *Resolver) CreateTodos(ctx context.Context, args struct{ Data CreateTodosData }) *TodoResponseResolver {
	inputs := make([]model.CreateTodoInput, 0, len(args.Data.Todos))
	for _, data := range args.Data.Todos {
		inputs = append(inputs, data.toInput())
	}
	return newTodoResponseResolver(r.todoUseCase.CreateMany(ctx, inputs))
}

func (r *Resolver) DeleteTodo(ctx context.Context, args struct{ ID graphql.ID }) *TodoResponseResolver {
	return newTodoResponseResolver(r.todoUseCase.Delete(ctx, string(args.ID)))
}

func (r *Resolver) CompleteTodo(ctx context.Context, args struct{ ID graphql.ID }) *TodoResponseResolver {
	return newTodoResponseResolver(r.todoUseCase.Complete(ctx, string(args.ID)))
}

func (r *Resolver) ResetTodo(ctx context.Context, args struct{ ID graphql.ID }) *TodoResponseResolver {
	return newTodoResponseResolver(r.todoUseCase.Reset(ctx, string(args.ID)))
}

func (r *Resolver) UpdateTodo(ctx context.Context, args struct {
	ID   graphql.ID
	Data UpdateTodoData
}) *TodoResponseResolver {
	return newTodoResponseResolver(r.todoUseCase.Update(ctx, string(args.ID), args.Data.toPatch()))
}

func (d TodoData) toInput() model.CreateTodoInput {
	input := model.CreateTodoInput{
		Title:       d.Title,
		Description: d.Description,
	}
	if d.CompletedAt != nil {
		completedAt := d.CompletedAt.Time
		input.CompletedAt = &completedAt
	}
	return input
}

func (d UpdateTodoData) toPatch() model.TodoPatch {
	return model.TodoPatch{
		Title:       model.Field[string]{Set: d.Title.Set, Value: d.Title.Value},
		Description: model.Field[string]{Set: d.Description.Set, Value: d.Description.Value},
		CompletedAt: nullTimeField(d.CompletedAt),
		DeletedAt:   nullTimeField(d.DeletedAt),
	}
}

func nullTimeField(value graphql.NullTime) model.Field[time.Time] {
	field := model.Field[time.Time]{Set: value.Set}
	if value.Value != nil {
		t := value.Value.Time
		field.Value = &t
	}
	return field
}
