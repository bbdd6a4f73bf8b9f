package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Bank Sampah API",
        "description": "School waste bank: bottle deposits, trashbag rewards and savings withdrawals",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Auth", "description": "Student and admin authentication"},
        {"name": "Students", "description": "Student roster management"},
        {"name": "WasteTypes", "description": "Waste type catalog"},
        {"name": "Deposits", "description": "Waste deposit log"},
        {"name": "Ledger", "description": "Derived reward ledger"},
        {"name": "TrashbagWithdrawals", "description": "Trashbag redemption workflow"},
        {"name": "Withdrawals", "description": "Legacy Rupiah savings workflow"},
        {"name": "Dashboard", "description": "Admin overview aggregates"},
        {"name": "Reports", "description": "Tabular exports"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Student login by NIS",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Tokens issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "NIS not registered"}
                }
            }
        },
        "/auth/admin/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Admin login with username and password",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AdminLoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Tokens issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "tags": ["Auth"],
                "summary": "Rotate a refresh token",
                "responses": {
                    "200": {"description": "New tokens issued"},
                    "401": {"description": "Token expired or revoked"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "class", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register a student",
                "responses": {"201": {"description": "Created"}, "409": {"description": "NIS already registered"}}
            }
        },
        "/students/import": {
            "post": {
                "tags": ["Students"],
                "summary": "Import a roster from CSV",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "type": "file", "required": true}
                ],
                "responses": {"201": {"description": "Imported"}, "400": {"description": "Validation error aborts the batch"}}
            }
        },
        "/students/{id}": {
            "get": {"tags": ["Students"], "summary": "Get student detail", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["Students"], "summary": "Update a student", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Students"], "summary": "Delete a student", "responses": {"204": {"description": "Deleted"}}}
        },
        "/students/{id}/ledger": {
            "get": {
                "tags": ["Ledger"],
                "summary": "Get a student's reward ledger",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/LedgerSummary"}}}
            }
        },
        "/students/{id}/deposits": {
            "get": {"tags": ["Ledger"], "summary": "List a student's deposit history", "responses": {"200": {"description": "OK"}}}
        },
        "/students/{id}/trashbag-withdrawals": {
            "get": {"tags": ["TrashbagWithdrawals"], "summary": "List a student's redemption history", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["TrashbagWithdrawals"],
                "summary": "Request a trashbag redemption",
                "responses": {
                    "201": {"description": "Pending request created"},
                    "400": {"description": "Amount exceeds available trashbags"}
                }
            }
        },
        "/students/{id}/savings": {
            "get": {"tags": ["Withdrawals"], "summary": "Get a student's savings balance", "responses": {"200": {"description": "OK"}}}
        },
        "/students/{id}/withdrawals": {
            "post": {"tags": ["Withdrawals"], "summary": "Request a savings withdrawal", "responses": {"201": {"description": "Created"}}}
        },
        "/waste-types": {
            "get": {"tags": ["WasteTypes"], "summary": "List waste types", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["WasteTypes"], "summary": "Create a waste type", "responses": {"201": {"description": "Created"}}}
        },
        "/waste-types/{id}": {
            "get": {"tags": ["WasteTypes"], "summary": "Get waste type detail", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["WasteTypes"], "summary": "Update a waste type", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["WasteTypes"], "summary": "Delete a waste type", "responses": {"204": {"description": "Deleted"}}}
        },
        "/deposits": {
            "get": {"tags": ["Deposits"], "summary": "List deposits", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["Deposits"],
                "summary": "Record a deposit",
                "description": "The trashbag reward is frozen at the current conversion rate; weighed waste credits the savings balance.",
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/deposits/{id}": {
            "delete": {"tags": ["Deposits"], "summary": "Delete a deposit", "responses": {"204": {"description": "Deleted"}}}
        },
        "/trashbag-withdrawals": {
            "get": {"tags": ["TrashbagWithdrawals"], "summary": "List withdrawal requests", "responses": {"200": {"description": "OK"}}}
        },
        "/trashbag-withdrawals/{id}": {
            "put": {"tags": ["TrashbagWithdrawals"], "summary": "Correct a withdrawal request", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["TrashbagWithdrawals"], "summary": "Delete a withdrawal request", "responses": {"204": {"description": "Deleted"}}}
        },
        "/trashbag-withdrawals/{id}/status": {
            "patch": {
                "tags": ["TrashbagWithdrawals"],
                "summary": "Approve or reject a withdrawal request",
                "responses": {
                    "200": {"description": "OK"},
                    "409": {"description": "Request already resolved"}
                }
            }
        },
        "/withdrawals": {
            "get": {"tags": ["Withdrawals"], "summary": "List savings withdrawal requests", "responses": {"200": {"description": "OK"}}}
        },
        "/withdrawals/{id}/status": {
            "patch": {"tags": ["Withdrawals"], "summary": "Approve or reject a savings withdrawal", "responses": {"200": {"description": "OK"}}}
        },
        "/withdrawals/{id}": {
            "delete": {"tags": ["Withdrawals"], "summary": "Delete a savings withdrawal request", "responses": {"204": {"description": "Deleted"}}}
        },
        "/dashboard/stats": {
            "get": {"tags": ["Dashboard"], "summary": "Admin overview aggregates", "responses": {"200": {"description": "OK"}}}
        },
        "/reports/deposits": {
            "get": {
                "tags": ["Reports"],
                "summary": "Export the deposit log",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "Rendered file"}}
            }
        },
        "/reports/downloads": {
            "get": {
                "tags": ["Reports"],
                "summary": "Re-download an archived export",
                "parameters": [
                    {"name": "token", "in": "query", "type": "string", "required": true}
                ],
                "responses": {
                    "200": {"description": "Archived file"},
                    "401": {"description": "Invalid or expired download token"}
                }
            }
        }
    },
    "definitions": {
        "StudentLoginRequest": {
            "type": "object",
            "required": ["nis"],
            "properties": {
                "nis": {"type": "string"}
            }
        },
        "AdminLoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "LedgerSummary": {
            "type": "object",
            "properties": {
                "student_id": {"type": "string"},
                "total_bottles": {"type": "integer"},
                "total_trashbags_earned": {"type": "integer"},
                "available_trashbags": {"type": "integer"},
                "waste_breakdown": {"type": "object"},
                "next_trashbag_bottles": {"type": "object"}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
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
