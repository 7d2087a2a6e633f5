package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Studio Booking API",
        "description": "Schedule management and conflict detection for studio bookings",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Conflicts", "description": "Conflict detection and day summaries"},
        {"name": "Schedules", "description": "Teacher and venue schedule management"},
        {"name": "Directory", "description": "Teacher and venue rosters"}
    ],
    "paths": {
        "/schedule-conflicts": {
            "post": {
                "tags": ["Conflicts"],
                "summary": "Check a proposed schedule for conflicts",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CheckConflictsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedule-duplicates/{day}": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Summarize duplicates and warnings across a day",
                "parameters": [
                    {"name": "day", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules": {
            "get": {
                "tags": ["Schedules"],
                "summary": "List schedules",
                "parameters": [
                    {"name": "type", "in": "query", "type": "string"},
                    {"name": "dayOfWeek", "in": "query", "type": "string"},
                    {"name": "teacherId", "in": "query", "type": "integer"},
                    {"name": "venueId", "in": "query", "type": "integer"},
                    {"name": "available", "in": "query", "type": "boolean"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Schedules"],
                "summary": "Create schedule",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateScheduleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/schedules/{type}/{id}": {
            "get": {
                "tags": ["Schedules"],
                "summary": "Get schedule",
                "parameters": [
                    {"name": "type", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Schedules"],
                "summary": "Update schedule",
                "parameters": [
                    {"name": "type", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateScheduleRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Schedules"],
                "summary": "Delete schedule",
                "parameters": [
                    {"name": "type", "in": "path", "required": true, "type": "string"},
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "204": {"description": "No Content"}
                }
            }
        },
        "/teachers": {
            "get": {
                "tags": ["Directory"],
                "summary": "List teachers",
                "parameters": [
                    {"name": "active", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/venues": {
            "get": {
                "tags": ["Directory"],
                "summary": "List venues",
                "parameters": [
                    {"name": "active", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "ProposedSchedule": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "type": {"type": "string", "enum": ["teacher", "venue"]},
                "day_of_week": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "teacher_id": {"type": "integer"},
                "venue_id": {"type": "integer"},
                "capacity": {"type": "integer"},
                "max_bookings": {"type": "integer"}
            },
            "required": ["type", "day_of_week", "start_time", "end_time"]
        },
        "CheckConflictsRequest": {
            "type": "object",
            "properties": {
                "schedule": {"$ref": "#/definitions/ProposedSchedule"}
            },
            "required": ["schedule"]
        },
        "Conflict": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "message": {"type": "string"},
                "severity": {"type": "string", "enum": ["error", "warning"]},
                "conflicting_schedules": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ScheduleCandidate"}
                }
            }
        },
        "ConflictVerdict": {
            "type": "object",
            "properties": {
                "has_conflicts": {"type": "boolean"},
                "conflicts": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Conflict"}
                },
                "degraded": {"type": "boolean"},
                "skipped_rules": {
                    "type": "array",
                    "items": {"type": "string"}
                }
            }
        },
        "ScheduleCandidate": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "type": {"type": "string"},
                "day_of_week": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "is_available": {"type": "boolean"},
                "max_bookings": {"type": "integer"},
                "teacher_id": {"type": "integer"},
                "venue_id": {"type": "integer"},
                "capacity": {"type": "integer"},
                "teacher_name": {"type": "string"},
                "venue_name": {"type": "string"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "DaySummary": {
            "type": "object",
            "properties": {
                "day_of_week": {"type": "string"},
                "total_schedules": {"type": "integer"},
                "duplicates": {"type": "integer"},
                "warnings": {"type": "integer"},
                "schedules": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/ScheduleCandidate"}
                }
            }
        },
        "CreateScheduleRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["teacher", "venue"]},
                "day_of_week": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "teacher_id": {"type": "integer"},
                "venue_id": {"type": "integer"},
                "capacity": {"type": "integer"},
                "max_bookings": {"type": "integer"},
                "is_available": {"type": "boolean"}
            },
            "required": ["type", "day_of_week", "start_time", "end_time"]
        },
        "UpdateScheduleRequest": {
            "type": "object",
            "properties": {
                "day_of_week": {"type": "string"},
                "start_time": {"type": "string"},
                "end_time": {"type": "string"},
                "teacher_id": {"type": "integer"},
                "venue_id": {"type": "integer"},
                "capacity": {"type": "integer"},
                "max_bookings": {"type": "integer"},
                "is_available": {"type": "boolean"}
            },
            "required": ["day_of_week", "start_time", "end_time"]
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
