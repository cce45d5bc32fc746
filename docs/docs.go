// Package docs registers the OpenAPI description served under /swagger.
// Regenerate with: swag init -g cmd/ats-assistant/main.go -o docs
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
        "/api/ai/chat": {
            "post": {
                "description": "Answers from role-filtered ATS data. LLM failures are reported in the answer text with status 200.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Ask the ATS assistant a question",
                "parameters": [
                    {
                        "description": "Question and caller identity",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.chatRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.chatResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.chatResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/handler.chatResponse"}}
                }
            }
        },
        "/api/ai/screen": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Uses the LLM verdict when available, otherwise deterministic fallback scoring.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["ai"],
                "summary": "Screen a candidate against a requirement",
                "parameters": [
                    {
                        "description": "Requirement and candidate profile",
                        "name": "body",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/handler.screenRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.ScreeningResult"}},
                    "400": {"description": "Bad Request", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "401": {"description": "Unauthorized", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "403": {"description": "Forbidden", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "404": {"description": "Not Found", "schema": {"type": "object", "additionalProperties": {"type": "string"}}},
                    "500": {"description": "Internal Server Error", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "string"}}}
                }
            }
        },
        "/health/ready": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.readinessResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.readinessResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ScreeningResult": {
            "type": "object",
            "properties": {
                "score": {"type": "number"},
                "rationale": {"type": "array", "items": {"type": "string"}},
                "red_flags": {"type": "array", "items": {"type": "string"}},
                "recommend": {"type": "string", "enum": ["SHORTLISTED", "REJECTED", "NEEDS_INTERVIEW"]},
                "source": {"type": "string", "enum": ["llm", "fallback"]}
            }
        },
        "domain.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "role": {"type": "string", "enum": ["ADMIN", "RECRUITER", "CLIENT"]},
                "client_id": {"type": "string"}
            }
        },
        "handler.candidateRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string", "maxLength": 200},
                "skills": {"type": "string", "example": "Go, SQL, Kubernetes"},
                "experience": {"type": "string", "example": "4"},
                "education": {"type": "string"}
            }
        },
        "handler.chatRequest": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "show requirement R-42"},
                "user": {"$ref": "#/definitions/domain.User"}
            }
        },
        "handler.chatResponse": {
            "type": "object",
            "properties": {
                "answer": {"type": "string"},
                "context": {"type": "object"}
            }
        },
        "handler.dependencyStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "error": {"type": "string"}
            }
        },
        "handler.readinessResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "dependencies": {
                    "type": "object",
                    "additionalProperties": {"$ref": "#/definitions/handler.dependencyStatus"}
                }
            }
        },
        "handler.screenRequest": {
            "type": "object",
            "required": ["requirement_id"],
            "properties": {
                "requirement_id": {"type": "string", "example": "R-42"},
                "candidate": {"$ref": "#/definitions/handler.candidateRequest"}
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

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "ATS Assistant API",
	Description:      "Role-aware chat assistant and candidate screening for the ATS.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
