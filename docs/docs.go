// Package docs holds the generated OpenAPI definition served at /swagger/*.
// Regenerate with: swag init -g cmd/api/main.go -o docs
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
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Register a new user",
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Logout",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/users/profile": {
            "get": {
                "tags": ["users"],
                "summary": "Get own profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            },
            "put": {
                "tags": ["users"],
                "summary": "Update own profile",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/tutorials": {
            "get": {
                "tags": ["tutorials"],
                "summary": "List own tutorials",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "published", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            },
            "post": {
                "tags": ["tutorials"],
                "summary": "Create a tutorial",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/api/tutorials/{id}": {
            "get": {
                "tags": ["tutorials"],
                "summary": "Get one of your tutorials",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "tags": ["tutorials"],
                "summary": "Update one of your tutorials",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "tags": ["tutorials"],
                "summary": "Delete one of your tutorials",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/tutorials/public": {
            "get": {
                "tags": ["public"],
                "summary": "List newest published tutorials",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/api/tutorials/public/{id}": {
            "get": {
                "tags": ["public"],
                "summary": "Read a published tutorial",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/api/stats": {
            "get": {
                "tags": ["public"],
                "summary": "Platform statistics",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Tutorial Platform API",
	Description:      "REST API for authoring and browsing multi-section tutorials.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
