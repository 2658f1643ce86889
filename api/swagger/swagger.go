package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Driver Training API",
        "description": "Fleet driver training and certification compliance tracker",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Drivers", "description": "Driver roster management"},
        {"name": "Training Modules", "description": "Training module catalogue"},
        {"name": "Training Progress", "description": "Module assignments and completion"},
        {"name": "Certifications", "description": "Certification records and expiry alerts"},
        {"name": "Dashboard", "description": "Fleet-wide summary"},
        {"name": "Analytics", "description": "Per-driver and per-module analytics"},
        {"name": "Reports", "description": "Compliance reporting"}
    ],
    "paths": {
        "/drivers": {
            "get": {
                "tags": ["Drivers"],
                "summary": "List drivers",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "is_active", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"},
                    {"name": "sort_by", "in": "query", "type": "string"},
                    {"name": "sort_order", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Drivers"],
                "summary": "Register a driver",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateDriverRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation error"},
                    "409": {"description": "Duplicate employee ID"}
                }
            }
        },
        "/drivers/{id}": {
            "get": {
                "tags": ["Drivers"],
                "summary": "Get driver by ID",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "put": {
                "tags": ["Drivers"],
                "summary": "Update driver",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"},
                    "409": {"description": "Duplicate employee ID"}
                }
            },
            "delete": {
                "tags": ["Drivers"],
                "summary": "Deactivate driver",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deactivated"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/training-modules": {
            "get": {
                "tags": ["Training Modules"],
                "summary": "List training modules",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Training Modules"],
                "summary": "Define a training module",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTrainingModuleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Validation error"},
                    "409": {"description": "Duplicate module name"}
                }
            }
        },
        "/training-modules/initialize-defaults": {
            "post": {
                "tags": ["Training Modules"],
                "summary": "Seed the default module catalogue",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/training-modules/{id}": {
            "get": {
                "tags": ["Training Modules"],
                "summary": "Get training module by ID",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/training-progress": {
            "get": {
                "tags": ["Training Progress"],
                "summary": "List progress records",
                "parameters": [
                    {"name": "driver_id", "in": "query", "type": "string"},
                    {"name": "module_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Training Progress"],
                "summary": "Assign a module to a driver",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AssignTrainingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Driver or module not found"},
                    "409": {"description": "Assignment already exists"}
                }
            }
        },
        "/training-progress/{id}": {
            "put": {
                "tags": ["Training Progress"],
                "summary": "Advance a training assignment",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"type": "object"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Validation error"},
                    "404": {"description": "Not found"},
                    "409": {"description": "Invalid status transition"}
                }
            }
        },
        "/certifications": {
            "get": {
                "tags": ["Certifications"],
                "summary": "List certifications",
                "parameters": [
                    {"name": "driver_id", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Certifications"],
                "summary": "Record a certification",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCertificationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "404": {"description": "Driver not found"}
                }
            }
        },
        "/certifications/expiring": {
            "get": {
                "tags": ["Certifications"],
                "summary": "Certifications expired or expiring within 30 days",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/dashboard/summary": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Fleet-wide training and certification summary",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/analytics/driver-progress/{driverId}": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Per-driver training analytics",
                "parameters": [
                    {"name": "driverId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/analytics/module-performance/{moduleId}": {
            "get": {
                "tags": ["Analytics"],
                "summary": "Per-module performance analytics",
                "parameters": [
                    {"name": "moduleId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/analytics/compliance-report": {
            "get": {
                "tags": ["Reports"],
                "summary": "Per-driver compliance report",
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["json", "csv", "pdf"], "default": "json"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Unsupported format"}
                }
            }
        }
    },
    "definitions": {
        "CreateDriverRequest": {
            "type": "object",
            "required": ["employee_id", "first_name", "last_name", "email", "phone", "hire_date", "license_number", "license_class", "license_expiry", "date_of_birth", "address", "emergency_contact_name", "emergency_contact_phone"],
            "properties": {
                "employee_id": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "email": {"type": "string"},
                "phone": {"type": "string"},
                "hire_date": {"type": "string", "format": "date"},
                "license_number": {"type": "string"},
                "license_class": {"type": "string", "enum": ["Class A", "Class B", "Class C", "CDL Class A", "CDL Class B"]},
                "license_expiry": {"type": "string", "format": "date"},
                "date_of_birth": {"type": "string", "format": "date"},
                "address": {"type": "string"},
                "emergency_contact_name": {"type": "string"},
                "emergency_contact_phone": {"type": "string"}
            }
        },
        "CreateTrainingModuleRequest": {
            "type": "object",
            "required": ["name", "description", "module_type", "duration_hours", "required_score"],
            "properties": {
                "name": {"type": "string"},
                "description": {"type": "string"},
                "module_type": {"type": "string"},
                "duration_hours": {"type": "number"},
                "required_score": {"type": "integer"},
                "is_mandatory": {"type": "boolean"},
                "prerequisites": {"type": "array", "items": {"type": "string"}}
            }
        },
        "AssignTrainingRequest": {
            "type": "object",
            "required": ["driver_id", "module_id"],
            "properties": {
                "driver_id": {"type": "string"},
                "module_id": {"type": "string"},
                "start_date": {"type": "string", "format": "date"}
            }
        },
        "CreateCertificationRequest": {
            "type": "object",
            "required": ["driver_id", "certification_name", "certification_type", "issue_date", "expiry_date", "issuing_authority", "certificate_number"],
            "properties": {
                "driver_id": {"type": "string"},
                "certification_name": {"type": "string"},
                "certification_type": {"type": "string"},
                "issue_date": {"type": "string", "format": "date"},
                "expiry_date": {"type": "string", "format": "date"},
                "issuing_authority": {"type": "string"},
                "certificate_number": {"type": "string"}
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
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
