// Package docs holds the OpenAPI description served under /swagger.
// Regenerate with: swag init -g internal/server/server.go -o internal/docs
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/orders/get-list": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders",
                "parameters": [
                    {"type": "integer", "description": "page size", "name": "take", "in": "query"},
                    {"type": "integer", "description": "offset", "name": "skip", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/orders/get-lists": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders matching a filter combination",
                "parameters": [
                    {"type": "integer", "description": "page size", "name": "take", "in": "query", "required": true},
                    {"type": "integer", "description": "offset", "name": "skip", "in": "query", "required": true},
                    {"type": "string", "description": "phone", "name": "phone", "in": "query"},
                    {"type": "integer", "description": "delivery status", "name": "delivered", "in": "query"},
                    {"type": "integer", "description": "payment method", "name": "method", "in": "query"},
                    {"type": "integer", "description": "payment status", "name": "payment", "in": "query"},
                    {"type": "integer", "description": "customer", "name": "customer_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/orders/get-list-by-field": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List orders by one field",
                "parameters": [
                    {"type": "string", "description": "allow-listed column", "name": "field", "in": "query", "required": true},
                    {"type": "string", "description": "value", "name": "value", "in": "query", "required": true},
                    {"type": "integer", "description": "page size", "name": "take", "in": "query", "required": true},
                    {"type": "integer", "description": "offset", "name": "skip", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/orders/order-detail/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Order with its lines",
                "parameters": [
                    {"type": "integer", "description": "order id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/orders/create": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Place an order",
                "parameters": [
                    {"description": "order", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/common.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.Response"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/orders/update/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Partially update an order",
                "parameters": [
                    {"type": "integer", "description": "order id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/orders/cancel/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Cancel an order",
                "parameters": [
                    {"type": "integer", "description": "order id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/orders/payment/{id}": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "tags": ["orders"],
                "summary": "Update the payment status of an order",
                "parameters": [
                    {"type": "integer", "description": "order id", "name": "id", "in": "path", "required": true},
                    {"description": "payment", "name": "payment", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.PaymentUpdateRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/orders/delete/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Delete an order and its lines",
                "parameters": [
                    {"type": "integer", "description": "order id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.Response"}}
                }
            }
        },
        "/orders/receipt/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "tags": ["orders"],
                "summary": "Order receipt as PDF",
                "parameters": [
                    {"type": "integer", "description": "order id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}}
                }
            }
        }
    },
    "definitions": {
        "common.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "message": {"type": "string"},
                "data": {},
                "error": {"type": "string"},
                "totalCount": {"type": "integer"}
            }
        },
        "models.CreateOrderRequest": {
            "type": "object",
            "required": ["customer_id", "name", "phone", "address", "total", "method", "payment", "orderDetails"],
            "properties": {
                "customer_id": {"type": "integer"},
                "name": {"type": "string"},
                "phone": {"type": "string"},
                "address": {"type": "string"},
                "total": {"type": "integer"},
                "method": {"type": "integer"},
                "payment": {"type": "integer"},
                "note": {"type": "string"},
                "delivered": {"type": "integer"},
                "orderDetails": {"type": "array", "items": {"$ref": "#/definitions/models.OrderDetailRequest"}}
            }
        },
        "models.OrderDetailRequest": {
            "type": "object",
            "required": ["product_id", "quantity", "price"],
            "properties": {
                "product_id": {"type": "integer"},
                "quantity": {"type": "integer"},
                "price": {"type": "integer"}
            }
        },
        "models.PaymentUpdateRequest": {
            "type": "object",
            "required": ["payment"],
            "properties": {
                "payment": {"type": "integer"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Bookstore API",
	Description:      "Online bookstore backend: catalogue, categories, reviews, carts, orders and statistics.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
