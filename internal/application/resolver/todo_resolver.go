package resolver

import (
	"math"
	"time"
	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/model"

	"github.com/graph-gophers/graphql-go"
)

type TodoResponseResolver struct {
	response model.TodoResponse
}

func newTodoResponseResolver(response model.TodoResponse) *TodoResponseResolver {
	return &TodoResponseResolver{response: response}
}

func (r *TodoResponseResolver) Errors() *[]*FormErrorResolver {
	if len(r.response.Errors) == 0 {
		return nil
	}
	resolvers := make([]*FormErrorResolver, 0, len(r.response.Errors))
	for _, fieldErr := range r.response.Errors {
		resolvers = append(resolvers, &FormErrorResolver{fieldErr: fieldErr})
	}
	return &resolvers
}

func (r *TodoResponseResolver) Todos() *[]*TodoResolver {
	if r.response.Todos == nil {
		return nil
	}
	resolvers := make([]*TodoResolver, 0, len(r.response.Todos))
	for _, todo := range r.response.Todos {
		resolvers = append(resolvers, &TodoResolver{todo: todo})
	}
	return &resolvers
}

func (r *TodoResponseResolver) Todo() *TodoResolver {
	if r.response.Todo == nil {
		return nil
	}
	return &TodoResolver{todo: r.response.Todo}
}

func (r *TodoResponseResolver) Total() *int32 {
	if r.response.Total == nil {
		return nil
	}
	total := clampInt32(*r.response.Total)
	return &total
}

// clampInt32 fits a count into the GraphQL Int range
func clampInt32(value int64) int32 {
	if value > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(value)
}

func (r *TodoResponseResolver) Message() *string {
	return r.response.Message
}

type FormErrorResolver struct {
	fieldErr model.FieldError
}

func (r *FormErrorResolver) Field() string {
	return r.fieldErr.Field
}

func (r *FormErrorResolver) Message() string {
	return r.fieldErr.Message
}

type TodoResolver struct {
	todo *entity.Todo
}

func (r *TodoResolver) ID() graphql.ID {
	return graphql.ID(r.todo.ID)
}

func (r *TodoResolver) UserID() string {
	return r.todo.UserID
}

func (r *TodoResolver) Title() string {
	return r.todo.Title
}

func (r *TodoResolver) Description() *string {
	return r.todo.Description
}

func (r *TodoResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.todo.CreatedAt}
}

func (r *TodoResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: r.todo.UpdatedAt}
}

func (r *TodoResolver) DeletedAt() *graphql.Time {
	return optionalTime(r.todo.DeletedAt)
}

func (r *TodoResolver) CompletedAt() *graphql.Time {
	return optionalTime(r.todo.CompletedAt)
}

func optionalTime(value *time.Time) *graphql.Time {
	if value == nil {
		return nil
	}
	return &graphql.Time{Time: *value}
}
