// Package docs registers the OpenAPI description served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in as admin or judge",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/services.LoginInput"}}],
                "responses": {"200": {"description": "token and user"}, "401": {"description": "Invalid credentials"}}
            }
        },
        "/admin/judges": {
            "get": {"tags": ["judges"], "summary": "List judges", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["judges"],
                "summary": "Create a judge with a login account",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateJudgeInput"}}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Email or username taken"}, "422": {"description": "Validation failed"}}
            }
        },
        "/admin/questions/{questionID}": {
            "delete": {
                "tags": ["questions"],
                "summary": "Delete a question",
                "description": "Removes the question and every answer to it, then recomputes all composite scores.",
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "path", "name": "questionID", "type": "integer", "required": true}],
                "responses": {"204": {"description": "Deleted"}, "404": {"description": "Question not found"}}
            }
        },
        "/admin/leaderboard": {
            "get": {
                "tags": ["leaderboard"],
                "summary": "Ranked leaderboard",
                "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.LeaderboardRow"}}}}
            }
        },
        "/admin/scores/recompute": {
            "post": {"tags": ["scoring"], "summary": "Rebuild all composite scores", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Recomputed"}}}
        },
        "/admin/banner": {
            "put": {
                "tags": ["banner"],
                "summary": "Replace the judge banner image",
                "consumes": ["multipart/form-data"],
                "security": [{"BearerAuth": []}],
                "parameters": [{"in": "formData", "name": "banner", "type": "file", "required": true}],
                "responses": {"200": {"description": "OK"}, "413": {"description": "Image too large"}, "422": {"description": "Unsupported image type"}, "503": {"description": "Object storage not configured"}}
            }
        },
        "/judge/competitors/{competitorID}/answers": {
            "put": {
                "tags": ["scoring"],
                "summary": "Save the caller's scores for a competitor",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "competitorID", "type": "integer", "required": true},
                    {"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.submitLevelsInput"}}
                ],
                "responses": {"200": {"description": "Saved"}, "409": {"description": "Competitor or question no longer exists"}, "422": {"description": "Incomplete or invalid submission"}}
            }
        }
    },
    "definitions": {
        "services.LoginInput": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "services.CreateJudgeInput": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "username": {"type": "string"}, "password": {"type": "string"}}
        },
        "handlers.submitLevelsInput": {
            "type": "object",
            "properties": {"levels": {"type": "object", "additionalProperties": {"type": "integer"}}}
        },
        "models.LeaderboardRow": {
            "type": "object",
            "properties": {
                "rank": {"type": "integer"},
                "competitor_id": {"type": "integer"},
                "competitor_name": {"type": "string"},
                "num_scores": {"type": "integer"},
                "total_score": {"type": "number"},
                "avg_score": {"type": "number"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Judging System API",
	Description:      "Competition judging: answer ledger, composite scores and leaderboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
