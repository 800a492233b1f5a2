// Package docs registers the OpenAPI description served under /swagger.
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
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK"}, "503": {"description": "Database unavailable"}}
            }
        },
        "/student/register": {"post": {"tags": ["student"], "summary": "Register a student", "responses": {"201": {"description": "Student registered successfully"}}}},
        "/student/login": {"post": {"tags": ["student"], "summary": "Student login", "responses": {"200": {"description": "Login successful"}}}},
        "/student/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["student"], "summary": "Current student profile", "responses": {"200": {"description": "OK"}}}},
        "/admin/register": {"post": {"tags": ["admin"], "summary": "Register an admin", "responses": {"201": {"description": "Admin registered successfully"}}}},
        "/admin/login": {"post": {"tags": ["admin"], "summary": "Admin login", "responses": {"200": {"description": "Login successful"}}}},
        "/admin/analytics": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Analytics overview", "responses": {"200": {"description": "OK"}}}},
        "/admin/analytics/course/{courseId}": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Course analytics", "parameters": [{"type": "string", "name": "courseId", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/admin/analytics/category/{category}": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Category analytics", "parameters": [{"type": "string", "name": "category", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/admin/dashboard/summary": {"get": {"security": [{"BearerAuth": []}], "tags": ["admin"], "summary": "Dashboard summary", "responses": {"200": {"description": "OK"}}}},
        "/course": {
            "get": {"tags": ["course"], "summary": "List courses", "parameters": [{"type": "string", "name": "categoryId", "in": "query"}, {"type": "string", "name": "class", "in": "query"}], "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["course"], "summary": "Create a course", "responses": {"201": {"description": "Course created successfully"}}}
        },
        "/course/{id}": {
            "get": {"tags": ["course"], "summary": "Get course by ID", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["course"], "summary": "Update a course", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Course updated successfully"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["course"], "summary": "Delete a course", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Course deleted successfully"}}}
        },
        "/enroll": {"post": {"security": [{"BearerAuth": []}], "tags": ["enroll"], "summary": "Enroll in a course", "responses": {"201": {"description": "Enrollment successful"}}}},
        "/enroll/my-courses": {"get": {"security": [{"BearerAuth": []}], "tags": ["enroll"], "summary": "List my courses", "responses": {"200": {"description": "OK"}}}},
        "/contact": {"post": {"tags": ["contact"], "summary": "Submit the contact form", "responses": {"201": {"description": "Contact form submitted successfully"}}}},
        "/contact/contacts": {"get": {"security": [{"BearerAuth": []}], "tags": ["contact"], "summary": "List contacts", "responses": {"200": {"description": "OK"}}}},
        "/contact/contacts/search": {"get": {"security": [{"BearerAuth": []}], "tags": ["contact"], "summary": "Search contacts", "parameters": [{"type": "string", "name": "query", "in": "query", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/contact/contacts/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["contact"], "summary": "Get contact by ID", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["contact"], "summary": "Delete contact", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Contact deleted successfully"}}}
        },
        "/contact/analysis/dashboard": {"get": {"security": [{"BearerAuth": []}], "tags": ["contact"], "summary": "Contact dashboard", "responses": {"200": {"description": "OK"}}}},
        "/contact/analysis/category": {"get": {"security": [{"BearerAuth": []}], "tags": ["contact"], "summary": "Contact analysis", "parameters": [{"type": "string", "default": "all", "name": "timeframe", "in": "query"}], "responses": {"200": {"description": "OK"}}}},
        "/contact/analysis/category/{category}": {"get": {"security": [{"BearerAuth": []}], "tags": ["contact"], "summary": "Contact category report", "parameters": [{"type": "string", "name": "category", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}},
        "/contact/analysis/category/{category}/export": {"get": {"security": [{"BearerAuth": []}], "produces": ["application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"], "tags": ["contact"], "summary": "Export contact category report", "parameters": [{"type": "string", "name": "category", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "JWT token for authorization",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Village Edu API",
	Description:      "Course catalog, enrollment, contact intake and analytics API for Village Edu",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
