package model

import (
	"errors"
	"todo-api/internal/domain/entity"
	"todo-api/pkg/msg"
)

// FieldError is a single failure entry of a TodoResponse
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// TodoResponse is the envelope returned by every todo operation.
// A response carries either Errors or data, never both.
type TodoResponse struct {
	Errors  []FieldError   `json:"errors,omitempty"`
	Todos   []*entity.Todo `json:"todos,omitempty"`
	Todo    *entity.Todo   `json:"todo,omitempty"`
	Total   *int64         `json:"total,omitempty"`
	Message *string        `json:"message,omitempty"`
}

// HasErrors reports whether the response is a failure
func (r TodoResponse) HasErrors() bool {
	return len(r.Errors) > 0
}

func SingleTodoResponse(todo *entity.Todo) TodoResponse {
	return TodoResponse{Todo: todo}
}

func TodoListResponse(todos []*entity.Todo, total int64) TodoResponse {
	if todos == nil {
		todos = []*entity.Todo{}
	}
	return TodoResponse{Todos: todos, Total: &total}
}

// Failure renders err as a failed response. Joined errors produce one entry each.
func Failure(err error) TodoResponse {
	return TodoResponse{Errors: toFieldErrors(err)}
}

func toFieldErrors(err error) []FieldError {
	if err == nil {
		return []FieldError{{Field: FieldException, Message: msg.GetMessage("todo.error.unexpected")}}
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var fieldErrors []FieldError
		for _, inner := range joined.Unwrap() {
			fieldErrors = append(fieldErrors, toFieldErrors(inner)...)
		}
		if len(fieldErrors) > 0 {
			return fieldErrors
		}
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		field := domainErr.Field
		if field == "" {
			field = FieldException
		}
		return []FieldError{{Field: field, Message: domainErr.Message}}
	}

	return []FieldError{{Field: FieldException, Message: err.Error()}}
}
