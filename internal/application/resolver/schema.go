package resolver

import (
	_ "embed"
	"todo-api/internal/domain/usecase/todo"

	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var Schema string

const maxQueryDepth = 10

// NewSchema parses the todo schema and binds it to the resolvers
func NewSchema(todoUseCase todo.UseCase) (*graphql.Schema, error) {
	return graphql.ParseSchema(Schema, NewResolver(todoUseCase),
		graphql.MaxDepth(maxQueryDepth),
	)
}
