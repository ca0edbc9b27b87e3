package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SMA Student Roster API",
        "description": "Student roster endpoint. One route serves every operation, selected by the action parameter.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Students", "description": "Student roster operations"},
        {"name": "System", "description": "Probes and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["System"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["System"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["System"],
                "summary": "Service counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        },
        "/student": {
            "get": {
                "tags": ["Students"],
                "summary": "Read actions: query, getById",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "action", "in": "query", "required": true, "type": "string", "enum": ["query", "getById"]},
                    {"name": "currentPage", "in": "query", "type": "integer"},
                    {"name": "pageSize", "in": "query", "type": "integer"},
                    {"name": "orderBy", "in": "query", "type": "string", "enum": ["id", "student_no", "name", "age", "major", "class_name", "enrollment_date"]},
                    {"name": "orderType", "in": "query", "type": "string", "enum": ["ASC", "DESC"]},
                    {"name": "studentNo", "in": "query", "type": "string"},
                    {"name": "name", "in": "query", "type": "string"},
                    {"name": "gender", "in": "query", "type": "integer", "enum": [1, 2]},
                    {"name": "major", "in": "query", "type": "string"},
                    {"name": "className", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "integer", "enum": [1, 2, 3]},
                    {"name": "id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "query succeeded", "schema": {"$ref": "#/definitions/PageEnvelope"}},
                    "400": {"description": "Unknown action or missing id", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/Envelope"}},
                    "500": {"description": "Query failed", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Write actions: add, update, delete, deleteBatch",
                "security": [{"BearerAuth": []}],
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "action", "in": "formData", "required": true, "type": "string", "enum": ["add", "update", "delete", "deleteBatch"]},
                    {"name": "id", "in": "formData", "type": "string"},
                    {"name": "ids[]", "in": "formData", "type": "array", "items": {"type": "string"}, "collectionFormat": "multi"},
                    {"name": "studentNo", "in": "formData", "type": "string", "maxLength": 20},
                    {"name": "name", "in": "formData", "type": "string", "maxLength": 50},
                    {"name": "gender", "in": "formData", "type": "integer", "enum": [1, 2]},
                    {"name": "age", "in": "formData", "type": "integer", "minimum": 1, "maximum": 150},
                    {"name": "major", "in": "formData", "type": "string"},
                    {"name": "className", "in": "formData", "type": "string"},
                    {"name": "phone", "in": "formData", "type": "string"},
                    {"name": "email", "in": "formData", "type": "string"},
                    {"name": "enrollmentDate", "in": "formData", "type": "string", "format": "date"},
                    {"name": "status", "in": "formData", "type": "integer", "enum": [1, 2, 3]}
                ],
                "responses": {
                    "200": {"description": "student added, student updated, student deleted or deleted N records", "schema": {"$ref": "#/definitions/Envelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/Envelope"}},
                    "401": {"description": "Missing or invalid token", "schema": {"$ref": "#/definitions/Envelope"}},
                    "404": {"description": "Student not found", "schema": {"$ref": "#/definitions/Envelope"}},
                    "409": {"description": "Student number already exists", "schema": {"$ref": "#/definitions/Envelope"}},
                    "500": {"description": "Operation failed", "schema": {"$ref": "#/definitions/Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "studentNo": {"type": "string"},
                "name": {"type": "string"},
                "gender": {"type": "integer"},
                "genderText": {"type": "string"},
                "age": {"type": "integer"},
                "major": {"type": "string"},
                "className": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "enrollmentDate": {"type": "string", "format": "date"},
                "status": {"type": "integer"},
                "statusText": {"type": "string"}
            }
        },
        "PageResult": {
            "type": "object",
            "properties": {
                "currentPage": {"type": "integer"},
                "pageSize": {"type": "integer"},
                "totalCount": {"type": "integer"},
                "totalPages": {"type": "integer"},
                "records": {"type": "array", "items": {"$ref": "#/definitions/Student"}}
            }
        },
        "Envelope": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {"type": "object"}
            }
        },
        "PageEnvelope": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {"$ref": "#/definitions/PageResult"}
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
