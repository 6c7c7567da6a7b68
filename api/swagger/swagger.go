package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Purchase Requisition API",
        "description": "Purchase request drafting, submission, and approval workflow.",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "tags": [
        {"name": "Auth", "description": "Authentication"},
        {"name": "Draft", "description": "Draft lines and the pending buffer"},
        {"name": "Attachments", "description": "File uploads bound to requisition lines"},
        {"name": "Submission", "description": "Sending the buffer to the approval queue"},
        {"name": "Approvals", "description": "Reviewer queue, tracking ids, and decisions"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate and obtain an access token",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token issued"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/getReqID": {
            "post": {
                "tags": ["Draft"],
                "summary": "Issue a fresh requisition line identifier",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Identifier issued"}
                }
            }
        },
        "/draft/items": {
            "get": {
                "tags": ["Draft"],
                "summary": "View the pending buffer and its grand total",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Buffer contents"}
                }
            },
            "post": {
                "tags": ["Draft"],
                "summary": "Validate a draft line and append it to the pending buffer",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateLineItemRequest"}}
                ],
                "responses": {
                    "201": {"description": "Line appended"},
                    "422": {"description": "Field-level validation errors"}
                }
            }
        },
        "/draft/items/{id}": {
            "delete": {
                "tags": ["Draft"],
                "summary": "Remove a buffered line before submission",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Removed"},
                    "404": {"description": "Unknown line"}
                }
            }
        },
        "/upload": {
            "post": {
                "tags": ["Attachments"],
                "summary": "Stage attachment files and upload them under a requisition line",
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "requisitionLineId", "in": "formData", "type": "string"},
                    {"name": "file", "in": "formData", "type": "file"}
                ],
                "responses": {
                    "200": {"description": "Attachment list after upload"}
                }
            }
        },
        "/attachments": {
            "get": {
                "tags": ["Attachments"],
                "summary": "List the caller's attachment entries",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Attachment list"}
                }
            }
        },
        "/deleteFile": {
            "post": {
                "tags": ["Attachments"],
                "summary": "Delete an attachment",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/DeleteFileRequest"}}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Unknown attachment"}
                }
            }
        },
        "/sendToPurchaseReq": {
            "post": {
                "tags": ["Submission"],
                "summary": "Send the pending buffer to the approval queue",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "Requisition created"},
                    "412": {"description": "Empty buffer or unresolved attachments"}
                }
            }
        },
        "/getApprovalData": {
            "get": {
                "tags": ["Approvals"],
                "summary": "Approval queue grouped by requisition id",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Grouped queue"},
                    "403": {"description": "Approver role required"}
                }
            }
        },
        "/getApprovalData/{lineId}": {
            "get": {
                "tags": ["Approvals"],
                "summary": "Untruncated long-text fields for one line",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "lineId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Line detail"},
                    "404": {"description": "Unknown line"}
                }
            }
        },
        "/assignReqID": {
            "post": {
                "tags": ["Approvals"],
                "summary": "Assign an IRQ1 tracking id to a line",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignTrackingRequest"}}
                ],
                "responses": {
                    "204": {"description": "Assigned"},
                    "409": {"description": "Tracking id already assigned"},
                    "412": {"description": "No correlation id on record"}
                }
            }
        },
        "/approveDenyRequest": {
            "post": {
                "tags": ["Approvals"],
                "summary": "Record an approve or deny decision for a line",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ApproveDenyRequest"}}
                ],
                "responses": {
                    "204": {"description": "Decision recorded"},
                    "409": {"description": "Line already in requested state"}
                }
            }
        },
        "/requisitions/{id}/csv": {
            "get": {
                "tags": ["Approvals"],
                "summary": "Export one requisition as CSV",
                "security": [{"BearerAuth": []}],
                "produces": ["text/csv"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "CSV payload"}
                }
            }
        },
        "/requisitions/{id}/pdf": {
            "get": {
                "tags": ["Approvals"],
                "summary": "Export one requisition as PDF",
                "security": [{"BearerAuth": []}],
                "produces": ["application/pdf"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "PDF payload"}
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
        "CreateLineItemRequest": {
            "type": "object",
            "properties": {
                "requester": {"type": "string"},
                "phoneExtension": {"type": "string"},
                "dateRequested": {"type": "string"},
                "dateNeeded": {"type": "string"},
                "orderType": {"type": "string", "enum": ["", "quarterly", "no-rush"]},
                "budgetObjCode": {"type": "string"},
                "fund": {"type": "string"},
                "location": {"type": "string"},
                "priceEach": {"type": "number"},
                "quantity": {"type": "integer"},
                "itemDescription": {"type": "string"},
                "justification": {"type": "string"},
                "additionalComments": {"type": "string"}
            }
        },
        "DeleteFileRequest": {
            "type": "object",
            "required": ["fileName"],
            "properties": {
                "requisitionLineId": {"type": "string"},
                "fileName": {"type": "string"}
            }
        },
        "AssignTrackingRequest": {
            "type": "object",
            "required": ["requisitionLineId", "trackingId"],
            "properties": {
                "requisitionLineId": {"type": "string"},
                "trackingId": {"type": "string"}
            }
        },
        "ApproveDenyRequest": {
            "type": "object",
            "required": ["requisitionLineId", "action"],
            "properties": {
                "requisitionLineId": {"type": "string"},
                "action": {"type": "string", "enum": ["approve", "deny"]}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"},
                "fields": {"type": "object"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
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
