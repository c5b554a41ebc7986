package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Academy Booking API",
        "description": "1:1 lesson booking matcher for the academy platform",
        "version": "1.3.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Portal authentication"},
        {"name": "Bookings", "description": "1:1 session matching and booking"},
        {"name": "Teachers", "description": "Teacher profile listings"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/api/v1/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and issue an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Access token issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/api/v1/bookings/match": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Book a 1:1 session",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/MatchSessionRequest"}}
                ],
                "responses": {
                    "200": {"description": "Booking result with recommendations or alternatives"}
                }
            }
        },
        "/api/v1/bookings/preview": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Preview eligible teachers for a request",
                "responses": {
                    "200": {"description": "Eligible teacher profiles"}
                }
            }
        },
        "/api/v1/bookings/{id}": {
            "get": {
                "tags": ["Bookings"],
                "summary": "Get booking detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Booking"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/api/v1/bookings/{id}/confirmation": {
            "get": {
                "tags": ["Bookings"],
                "summary": "Download booking confirmation PDF",
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Confirmation PDF"}
                }
            }
        },
        "/api/v1/teachers": {
            "get": {
                "tags": ["Teachers"],
                "summary": "List teacher profiles",
                "responses": {
                    "200": {"description": "Teacher profiles"}
                }
            }
        },
        "/api/v1/teachers/{id}": {
            "get": {
                "tags": ["Teachers"],
                "summary": "Get teacher profile",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Teacher profile"},
                    "404": {"description": "Not found"}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "MatchSessionRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "course_id": {"type": "string"},
                "duration_minutes": {"type": "integer", "enum": [30, 60]},
                "priority": {"type": "string"},
                "criteria": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
