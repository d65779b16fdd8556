// Package docs holds the swagger description of the todo-api HTTP surface.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/graphql": {
            "get": {
                "description": "Runs a todo query or mutation for the caller of the session cookie. Operation failures are reported in the errors field of TodoResponse.",
                "produces": ["application/json"],
                "tags": ["graphql"],
                "summary": "Execute a GraphQL operation",
                "parameters": [
                    {"type": "string", "description": "GraphQL query (GET)", "name": "query", "in": "query"},
                    {"type": "string", "description": "Operation name (GET)", "name": "operationName", "in": "query"},
                    {"type": "string", "description": "JSON encoded variables (GET)", "name": "variables", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "GraphQL response", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Malformed request", "schema": {"$ref": "#/definitions/controller.GraphQLErrorResponse"}}
                }
            },
            "post": {
                "description": "Runs a todo query or mutation for the caller of the session cookie. Operation failures are reported in the errors field of TodoResponse.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["graphql"],
                "summary": "Execute a GraphQL operation",
                "parameters": [
                    {"description": "GraphQL request (POST)", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/controller.GraphQLRequest"}}
                ],
                "responses": {
                    "200": {"description": "GraphQL response", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Malformed request", "schema": {"$ref": "#/definitions/controller.GraphQLErrorResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "description": "Reports the status of the database, the cache and the queue workers",
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.HealthResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/model.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "controller.GraphQLErrorMessage": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "controller.GraphQLErrorResponse": {
            "type": "object",
            "properties": {
                "errors": {"type": "array", "items": {"$ref": "#/definitions/controller.GraphQLErrorMessage"}}
            }
        },
        "controller.GraphQLRequest": {
            "type": "object",
            "properties": {
                "operationName": {"type": "string"},
                "query": {"type": "string"},
                "variables": {"type": "object", "additionalProperties": true}
            }
        },
        "model.ComponentHealthStatus": {
            "type": "object",
            "properties": {
                "details": {"type": "object", "additionalProperties": {"type": "string"}},
                "status": {"$ref": "#/definitions/model.HealthStatus"}
            }
        },
        "model.HealthResponse": {
            "type": "object",
            "properties": {
                "cache": {"$ref": "#/definitions/model.ComponentHealthStatus"},
                "database": {"$ref": "#/definitions/model.ComponentHealthStatus"},
                "queue": {"$ref": "#/definitions/model.ComponentHealthStatus"},
                "status": {"$ref": "#/definitions/model.HealthStatus"}
            }
        },
        "model.HealthStatus": {
            "type": "string",
            "enum": ["UP", "DOWN", "UNKNOWN"],
            "x-enum-varnames": ["StatusUp", "StatusDown", "StatusUnknown"]
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/todo-api",
	Schemes:          []string{},
	Title:            "todo-api",
	Description:      "Per user todo list served over GraphQL",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
