// Package docs registers the OpenAPI document served under /swagger.
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "openapi": "3.1.0",
    "info": {
        "title": "{{.Title}}",
        "description": "{{.Description}}",
        "version": "{{.Version}}"
    },
    "servers": [{"url": "/api/v1"}],
    "components": {
        "securitySchemes": {
            "BearerAuth": {"type": "apiKey", "in": "header", "name": "Authorization"}
        }
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "system"},
        {"name": "stores"},
        {"name": "integrations"},
        {"name": "orders"},
        {"name": "products"},
        {"name": "callbacks"}
    ],
    "paths": {
        "/health": {"get": {"tags": ["system"], "summary": "Liveness and dependency checks", "security": [], "responses": {"200": {"description": "OK"}, "503": {"description": "Degraded"}}}},
        "/system/info": {"get": {"tags": ["system"], "summary": "Service name, version and uptime", "responses": {"200": {"description": "OK"}}}},
        "/stores": {
            "get": {"tags": ["stores"], "summary": "List the caller's stores", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["stores"], "summary": "Create a store with the default dummy integrations", "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}}}
        },
        "/stores/{id}": {
            "get": {"tags": ["stores"], "summary": "Get a store", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["stores"], "summary": "Rename a store", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["stores"], "summary": "Delete a store", "responses": {"204": {"description": "Deleted"}}}
        },
        "/stores/{id}/integrations/ecommerce": {
            "get": {"tags": ["integrations"], "summary": "List e-commerce integrations", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["integrations"], "summary": "Add an e-commerce integration", "responses": {"201": {"description": "Created"}}}
        },
        "/stores/{id}/integrations/ecommerce/{integrationId}": {
            "put": {"tags": ["integrations"], "summary": "Update an e-commerce integration", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["integrations"], "summary": "Remove an e-commerce integration", "responses": {"204": {"description": "Removed"}}}
        },
        "/stores/{id}/integrations/courier": {
            "get": {"tags": ["integrations"], "summary": "List courier integrations", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["integrations"], "summary": "Add a courier integration", "responses": {"201": {"description": "Created"}}}
        },
        "/stores/{id}/integrations/courier/{integrationId}": {
            "put": {"tags": ["integrations"], "summary": "Update a courier integration", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["integrations"], "summary": "Remove a courier integration", "responses": {"204": {"description": "Removed"}}}
        },
        "/stores/{id}/orders/pull": {
            "post": {"tags": ["orders"], "summary": "Pull products and new orders from every e-commerce integration", "responses": {"200": {"description": "OK"}, "409": {"description": "Sync already running"}, "500": {"description": "Unsupported provider"}, "502": {"description": "Gateway unavailable"}}}
        },
        "/stores/{id}/orders": {
            "get": {"tags": ["orders"], "summary": "List orders", "responses": {"200": {"description": "OK"}}}
        },
        "/stores/{id}/orders/{orderId}": {
            "get": {"tags": ["orders"], "summary": "Get an order", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/stores/{id}/orders/{orderId}/dispatch": {
            "post": {"tags": ["orders"], "summary": "Dispatch a pending order through the first courier", "responses": {"200": {"description": "OK"}, "400": {"description": "Order not pending or no courier"}, "502": {"description": "Courier refused"}}}
        },
        "/stores/{id}/orders/{orderId}/status": {
            "put": {"tags": ["orders"], "summary": "Move an order through its lifecycle", "responses": {"200": {"description": "OK"}, "400": {"description": "Illegal transition"}}}
        },
        "/stores/{id}/products": {
            "get": {"tags": ["products"], "summary": "List products", "responses": {"200": {"description": "OK"}}}
        },
        "/callbacks/couriers/{integrationId}/status": {
            "post": {"tags": ["callbacks"], "summary": "Courier delivery status update", "security": [], "parameters": [{"name": "X-Courier-Token", "in": "header", "required": true, "schema": {"type": "string"}}], "responses": {"200": {"description": "OK"}, "401": {"description": "Bad courier token"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Title:            "UniKhata API",
	Description:      "Multi-store order aggregation and courier dispatch",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
