// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {
            "post": {
                "description": "Create an account, optionally with a base64 avatar, and return a token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a new user",
                "parameters": [
                    {"description": "Registration data", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterData"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AuthEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ginx.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ginx.Response"}},
                    "413": {"description": "Payload Too Large", "schema": {"$ref": "#/definitions/ginx.Response"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Authenticate with email and password and return a token",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Log in",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginData"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AuthEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ginx.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ginx.Response"}}
                }
            }
        },
        "/account/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["account"],
                "summary": "Current profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.UserEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ginx.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/ginx.Response"}}
                }
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["account"],
                "summary": "Update profile",
                "parameters": [
                    {"description": "Fields to change", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateProfileRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.UserEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ginx.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ginx.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["account"],
                "summary": "Delete account",
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ginx.Response"}}
                }
            }
        },
        "/account/me/avatar": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["account"],
                "summary": "Replace avatar",
                "parameters": [
                    {"description": "Base64 image", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateAvatarRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/user.UserEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ginx.Response"}},
                    "413": {"description": "Payload Too Large", "schema": {"$ref": "#/definitions/ginx.Response"}}
                }
            }
        },
        "/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "List users",
                "parameters": [
                    {"type": "integer", "default": 1, "description": "Page", "name": "page", "in": "query"},
                    {"type": "integer", "default": 10, "description": "Page size", "name": "page_size", "in": "query"},
                    {"type": "string", "description": "Name or email fragment", "name": "search", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ListUsersEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ginx.Response": {
            "type": "object",
            "properties": {"data": {}, "error": {"type": "string"}}
        },
        "user.UserResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string", "format": "uuid"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "image": {"type": "string"},
                "created_at": {"type": "string", "format": "date-time"},
                "updated_at": {"type": "string", "format": "date-time"}
            }
        },
        "user.UserEnvelope": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/user.UserResponse"}, "error": {"type": "string"}}
        },
        "dto.RegisterData": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "John Doe"},
                "email": {"type": "string", "example": "john@example.com"},
                "image": {"type": "string", "example": "https://cdn.example.com/john.png"},
                "password": {"type": "string", "example": "password123"},
                "image64": {"type": "string", "description": "base64 image or data URL"}
            }
        },
        "dto.LoginData": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "john@example.com"},
                "password": {"type": "string", "example": "password123"}
            }
        },
        "dto.AuthResponse": {
            "type": "object",
            "properties": {"user": {"$ref": "#/definitions/user.UserResponse"}, "token": {"type": "string"}}
        },
        "dto.AuthEnvelope": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/dto.AuthResponse"}, "error": {"type": "string"}}
        },
        "dto.UpdateProfileRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}}
        },
        "dto.UpdateAvatarRequest": {
            "type": "object",
            "properties": {"image64": {"type": "string"}}
        },
        "dto.ListUsersResponse": {
            "type": "object",
            "properties": {
                "users": {"type": "array", "items": {"$ref": "#/definitions/user.UserResponse"}},
                "total": {"type": "integer"},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"}
            }
        },
        "dto.ListUsersEnvelope": {
            "type": "object",
            "properties": {"data": {"$ref": "#/definitions/dto.ListUsersResponse"}, "error": {"type": "string"}}
        }
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Account Auth",
	Description:      "Account registration and authentication API",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
