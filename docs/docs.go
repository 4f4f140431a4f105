// Package docs holds the OpenAPI document served under /swagger.
// Regenerate with: swag init -g cmd/server/main.go
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "Pricing Team"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/pricing/products/{product_id}/price": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pricing"],
                "summary": "Calculate the price of a product",
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "product_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Customer ID for tier discount", "name": "customer_id", "in": "query"},
                    {"type": "integer", "description": "Quantity (default 1)", "name": "quantity", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pricing"],
                "summary": "Set the base price of a product",
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "product_id", "in": "path", "required": true},
                    {"description": "New price", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pricing.UpdateProductPriceRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/pricing/products/{product_id}/tier-pricing": {
            "get": {
                "produces": ["application/json"],
                "tags": ["pricing"],
                "summary": "Preview a product's price at every tier",
                "parameters": [
                    {"type": "integer", "description": "Product ID", "name": "product_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/pricing/orders/calculate": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pricing"],
                "summary": "Price a whole order",
                "parameters": [
                    {"description": "Order lines", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pricing.CalculateOrderRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/pricing/volume-rules": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["pricing"],
                "summary": "Create a volume discount rule",
                "parameters": [
                    {"description": "Rule", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pricing.CreateVolumeRuleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/pricing/volume-rules/{id}": {
            "delete": {
                "tags": ["pricing"],
                "summary": "Delete a volume discount rule",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Rule ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "204": {"description": "No Content"},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/pricing/promotions": {
            "get": {
                "produces": ["application/json"],
                "tags": ["promotions"],
                "summary": "List promotions in effect now",
                "parameters": [
                    {"type": "integer", "description": "Restrict to one product", "name": "product_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["promotions"],
                "summary": "Create a promotion",
                "parameters": [
                    {"description": "Promotion", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pricing.CreatePromotionRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/pricing/promotions/expire": {
            "post": {
                "produces": ["application/json"],
                "tags": ["promotions"],
                "summary": "Deactivate promotions whose validity has ended",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/pricing/promotions/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["promotions"],
                "summary": "Get a promotion",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Promotion ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/pricing/promotions/{id}/deactivate": {
            "post": {
                "produces": ["application/json"],
                "tags": ["promotions"],
                "summary": "Deactivate a promotion",
                "parameters": [
                    {"type": "string", "format": "uuid", "description": "Promotion ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/pricing/tiers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tiers"],
                "summary": "List the tier catalog",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/pricing/tiers/{level}/customers": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tiers"],
                "summary": "List customers assigned to a tier",
                "parameters": [
                    {"enum": ["BRONZE", "SILVER", "GOLD", "PLATINUM"], "type": "string", "description": "Tier level", "name": "level", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/pricing/customers/{customer_id}/tier": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tiers"],
                "summary": "Get a customer's tier",
                "parameters": [
                    {"type": "integer", "description": "Customer ID", "name": "customer_id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tiers"],
                "summary": "Assign a tier to a customer",
                "parameters": [
                    {"type": "integer", "description": "Customer ID", "name": "customer_id", "in": "path", "required": true},
                    {"description": "Tier assignment", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pricing.SetCustomerTierRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/pricing/customers/{customer_id}/tier/history": {
            "get": {
                "produces": ["application/json"],
                "tags": ["tiers"],
                "summary": "List a customer's tier assignments, newest first",
                "parameters": [
                    {"type": "integer", "description": "Customer ID", "name": "customer_id", "in": "path", "required": true},
                    {"type": "integer", "description": "Maximum entries (default 50, max 500)", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/pricing/customers/tiers/bulk": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["tiers"],
                "summary": "Assign tiers to many customers atomically",
                "parameters": [
                    {"description": "Assignments", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/pricing.BulkUpdateTiersRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        },
        "/ping": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.Response"}}
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "request_id": {"type": "string"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/dto.ValidationDetail"}}
            }
        },
        "dto.Response": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean"},
                "data": {},
                "error": {"$ref": "#/definitions/dto.ErrorInfo"}
            }
        },
        "dto.ValidationDetail": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "pricing.OrderItem": {
            "type": "object",
            "required": ["product_id", "quantity"],
            "properties": {
                "product_id": {"type": "integer"},
                "quantity": {"type": "integer", "minimum": 1}
            }
        },
        "pricing.CalculateOrderRequest": {
            "type": "object",
            "required": ["items"],
            "properties": {
                "customer_id": {"type": "integer"},
                "items": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/pricing.OrderItem"}}
            }
        },
        "pricing.CreatePromotionRequest": {
            "type": "object",
            "required": ["product_id"],
            "properties": {
                "product_id": {"type": "integer"},
                "promotional_price": {"type": "string", "example": "89.99"},
                "valid_from": {"type": "string", "format": "date-time"},
                "valid_until": {"type": "string", "format": "date-time"},
                "reason": {"type": "string", "maxLength": 500}
            }
        },
        "pricing.CreateVolumeRuleRequest": {
            "type": "object",
            "required": ["min_quantity"],
            "properties": {
                "product_id": {"type": "integer"},
                "min_quantity": {"type": "integer", "minimum": 1},
                "max_quantity": {"type": "integer"},
                "discount_percentage": {"type": "string", "example": "0.05"}
            }
        },
        "pricing.SetCustomerTierRequest": {
            "type": "object",
            "required": ["level", "reason"],
            "properties": {
                "level": {"type": "string", "enum": ["BRONZE", "SILVER", "GOLD", "PLATINUM"]},
                "reason": {"type": "string", "maxLength": 500}
            }
        },
        "pricing.BulkTierUpdateItem": {
            "type": "object",
            "required": ["customer_id", "level", "reason"],
            "properties": {
                "customer_id": {"type": "integer"},
                "level": {"type": "string", "enum": ["BRONZE", "SILVER", "GOLD", "PLATINUM"]},
                "reason": {"type": "string", "maxLength": 500}
            }
        },
        "pricing.BulkUpdateTiersRequest": {
            "type": "object",
            "required": ["updates"],
            "properties": {
                "updates": {"type": "array", "minItems": 1, "maxItems": 1000, "items": {"$ref": "#/definitions/pricing.BulkTierUpdateItem"}}
            }
        },
        "pricing.UpdateProductPriceRequest": {
            "type": "object",
            "properties": {
                "price": {"type": "string", "example": "129.90"},
                "cost": {"type": "string", "example": "80.00"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Pricing Engine API",
	Description:      "Product prices, customer tiers, promotions and volume discounts. Amounts are in RON.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
