// Package docs holds the generated Swagger specification.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{escape .Description}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "summary": "Readiness check (pings the database)",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/healthz": {
            "get": {
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stores": {
            "get": {
                "summary": "List stores",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "region", "in": "query", "type": "string", "description": "Region code (PR or SP)"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"}
                }
            },
            "post": {
                "summary": "Create store",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "store", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StoreFields"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"}
                }
            }
        },
        "/stores/stats": {
            "get": {
                "summary": "Per-region store counts and network total",
                "produces": ["application/json"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/stores/{id}": {
            "get": {
                "summary": "Get store by ID",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            },
            "put": {
                "summary": "Update store",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true},
                    {"name": "store", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StoreFields"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Bad Request"},
                    "404": {"description": "Not Found"}
                }
            },
            "delete": {
                "summary": "Delete store",
                "parameters": [
                    {"name": "id", "in": "path", "type": "string", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/flyers/{region}/export": {
            "post": {
                "summary": "Generate and archive the flyer PDF for a region",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "region", "in": "path", "type": "string", "required": true, "description": "Region code (PR or SP)"}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Bad Request"},
                    "409": {"description": "Conflict"},
                    "422": {"description": "Unprocessable Entity"}
                }
            }
        },
        "/flyers/{region}/download": {
            "get": {
                "summary": "Presigned URL for the latest archived flyer",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "region", "in": "path", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not Found"}
                }
            }
        },
        "/exports": {
            "get": {
                "summary": "List archived flyer exports",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"},
                    {"name": "offset", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "StoreFields": {
            "type": "object",
            "required": ["city", "region", "address", "whatsapp"],
            "properties": {
                "city": {"type": "string"},
                "region": {"type": "string", "enum": ["PR", "SP"]},
                "address": {"type": "string"},
                "phone": {"type": "string"},
                "whatsapp": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Flyer API",
	Description:      "Store location administration and flyer export API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
