package controller

import (
	"encoding/json"
	"net/http"
	"todo-api/pkg/msg"

	"github.com/graph-gophers/graphql-go"
	"github.com/labstack/echo/v4"
)

type GraphQLController struct {
	api    *echo.Group
	schema *graphql.Schema
}

// GraphQLRequest is the standard GraphQL over HTTP request body
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQLErrorResponse is returned when the request cannot be executed at all
type GraphQLErrorResponse struct {
	Errors []GraphQLErrorMessage `json:"errors"`
}

type GraphQLErrorMessage struct {
	Message string `json:"message"`
}

func NewGraphQLController(api *echo.Group, schema *graphql.Schema) *GraphQLController {
	return &GraphQLController{api: api, schema: schema}
}

// InitGraphQLRoutes initializes graphql routes
func (controller *GraphQLController) InitGraphQLRoutes() {
	controller.api.POST("/graphql", controller.Execute)
	controller.api.GET("/graphql", controller.Execute)
}

// Execute godoc
// @Summary Execute a GraphQL operation
// @Description Runs a todo query or mutation for the caller of the session cookie. Operation failures are reported in the errors field of TodoResponse.
// @Tags graphql
// @Accept json
// @Produce json
// @Param request body GraphQLRequest false "GraphQL request (POST)"
// @Param query query string false "GraphQL query (GET)"
// @Param operationName query string false "Operation name (GET)"
// @Param variables query string false "JSON encoded variables (GET)"
// @Success 200 {object} map[string]interface{} "GraphQL response"
// @Failure 400 {object} GraphQLErrorResponse "Malformed request"
// @Router /graphql [post]
// @Router /graphql [get]
func (controller *GraphQLController) Execute(c echo.Context) error {
	request, err := readGraphQLRequest(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, graphQLError(msg.GetMessage("graphql.error.invalid-request", err)))
	}
	if request.Query == "" {
		return c.JSON(http.StatusBadRequest, graphQLError(msg.GetMessage("graphql.error.missing-query")))
	}

	response := controller.schema.Exec(c.Request().Context(), request.Query, request.OperationName, request.Variables)
	return c.JSON(http.StatusOK, response)
}

func readGraphQLRequest(c echo.Context) (*GraphQLRequest, error) {
	request := &GraphQLRequest{}

	if c.Request().Method == http.MethodGet {
		request.Query = c.QueryParam("query")
		request.OperationName = c.QueryParam("operationName")
		if variables := c.QueryParam("variables"); variables != "" {
			if err := json.Unmarshal([]byte(variables), &request.Variables); err != nil {
				return nil, err
			}
		}
		return request, nil
	}

	if err := json.NewDecoder(c.Request().Body).Decode(request); err != nil {
		return nil, err
	}
	return request, nil
}

func graphQLError(message string) GraphQLErrorResponse {
	return GraphQLErrorResponse{Errors: []GraphQLErrorMessage{{Message: message}}}
}
