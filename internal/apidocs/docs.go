// Package apidocs registers the GutWise OpenAPI 2.0 document with swag so
// the Swagger UI at /api/docs/ can serve it. Keep the template in step with
// the handler annotations in internal/recipes and internal/server.
package apidocs

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
        "/": {
            "get": {
                "description": "Report API status and build information.",
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/server.HealthResponse"}},
                    "503": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/server.HealthResponse"}}
                }
            }
        },
        "/recipes": {
            "get": {
                "description": "List recipes in insertion order, optionally filtered by a search term and dietary tags.",
                "produces": ["application/json"],
                "tags": ["recipes"],
                "summary": "List recipes",
                "parameters": [
                    {"type": "string", "description": "Case-insensitive substring of title, description, or an ingredient", "name": "search", "in": "query"},
                    {"type": "string", "description": "Comma-separated dietary tags; all must match", "name": "dietary_tags", "in": "query"},
                    {"type": "integer", "description": "Maximum number of results", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Number of results to skip", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.Recipe"}}},
                    "400": {"description": "Invalid query", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            },
            "post": {
                "description": "Create a recipe. The server assigns the id and timestamps.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["recipes"],
                "summary": "Create recipe",
                "parameters": [
                    {"description": "Recipe to create", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.RecipeCreate"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/models.Recipe"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/recipes/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["recipes"],
                "summary": "Get recipe",
                "parameters": [
                    {"type": "string", "description": "Recipe ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Recipe"}},
                    "404": {"description": "Recipe not found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        },
        "/dietary-filters": {
            "get": {
                "description": "Dietary tags in use with recipe counts, most used first.",
                "produces": ["application/json"],
                "tags": ["recipes"],
                "summary": "List dietary filters",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.DietaryFilter"}}}
                }
            }
        },
        "/personal-story": {
            "get": {
                "produces": ["application/json"],
                "tags": ["story"],
                "summary": "Get personal story",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.PersonalStory"}},
                    "404": {"description": "Personal story not found", "schema": {"$ref": "#/definitions/server.Problem"}}
                }
            }
        }
    },
    "definitions": {
        "models.Recipe": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "1"},
                "title": {"type": "string", "example": "Gentle Chicken and Rice Bowl"},
                "description": {"type": "string"},
                "image": {"type": "string"},
                "prep_time": {"type": "string", "example": "15 min"},
                "cook_time": {"type": "string", "example": "25 min"},
                "servings": {"type": "integer", "example": 4},
                "difficulty": {"type": "string", "example": "Easy"},
                "dietary_tags": {"type": "array", "items": {"type": "string"}},
                "ingredients": {"type": "array", "items": {"type": "string"}},
                "instructions": {"type": "array", "items": {"type": "string"}},
                "story": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "models.RecipeCreate": {
            "description": "Request body for creating a recipe.",
            "type": "object",
            "required": ["title", "description", "image", "prep_time", "cook_time", "difficulty", "ingredients", "instructions"],
            "properties": {
                "title": {"type": "string", "maxLength": 200, "example": "Simple Baked Sweet Potato"},
                "description": {"type": "string"},
                "image": {"type": "string"},
                "prep_time": {"type": "string", "example": "5 min"},
                "cook_time": {"type": "string", "example": "45 min"},
                "servings": {"type": "integer", "minimum": 1, "example": 1},
                "difficulty": {"type": "string", "example": "Easy"},
                "dietary_tags": {"type": "array", "items": {"type": "string"}},
                "ingredients": {"type": "array", "minItems": 1, "items": {"type": "string"}},
                "instructions": {"type": "array", "minItems": 1, "items": {"type": "string"}},
                "story": {"type": "string"}
            }
        },
        "models.DietaryFilter": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "gluten-free"},
                "label": {"type": "string", "example": "Gluten-Free"},
                "count": {"type": "integer", "example": 5}
            }
        },
        "models.PersonalStory": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "example": "main-story"},
                "title": {"type": "string"},
                "subtitle": {"type": "string"},
                "content": {"type": "array", "items": {"type": "string"}},
                "image": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "server.HealthResponse": {
            "description": "API health and build information.",
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "status": {"type": "string", "example": "ok"},
                "version": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "server.Problem": {
            "description": "RFC 7807 Problem Details error response.",
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "title": {"type": "string"},
                "status": {"type": "integer"},
                "detail": {"type": "string"},
                "instance": {"type": "string"},
                "errors": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "GutWise Recipe API",
	Description:      "Gut-friendly recipes, dietary filters, and the personal story behind them.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
