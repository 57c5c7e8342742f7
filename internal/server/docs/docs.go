// Package docs registers the OpenAPI description served at /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/health": {"get": {"tags": ["health"], "summary": "Health check", "responses": {"200": {"description": "OK"}, "503": {"description": "Database unreachable"}}}},
        "/admin/stats": {"get": {"tags": ["admin"], "summary": "Administrator dashboard summary", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/AdminSummary"}}}}},
        "/admin/candidates/by-department": {"get": {"tags": ["admin"], "summary": "Candidates per department", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Series"}}}}},
        "/admin/candidates/by-education": {"get": {"tags": ["admin"], "summary": "Candidates per education level", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Series"}}}}},
        "/admin/candidates/by-month": {"get": {"tags": ["admin"], "summary": "Candidates per month of the current year", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Series"}}}}},
        "/admin/offers/by-department": {"get": {"tags": ["admin"], "summary": "Offers per department", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Series"}}}}},
        "/admin/interviews/by-status": {"get": {"tags": ["admin"], "summary": "Interviews per status", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Series"}}}}},
        "/admin/trends/{entity}": {"get": {"tags": ["admin"], "summary": "Entity trend", "security": [{"BearerAuth": []}],
            "parameters": [
                {"name": "entity", "in": "path", "required": true, "type": "string", "enum": ["candidates", "offers", "interviews"]},
                {"name": "days", "in": "query", "type": "integer", "minimum": 1, "maximum": 366},
                {"name": "dense", "in": "query", "type": "boolean"},
                {"name": "field", "in": "query", "type": "string", "enum": ["created_at", "scheduled_at"]}
            ],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/DayPoint"}}}, "400": {"description": "Invalid parameter"}}}},
        "/recruiter/stats": {"get": {"tags": ["recruiter"], "summary": "Recruiter dashboard summary", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/RecruiterSummary"}}}}},
        "/recruiter/candidates/by-department": {"get": {"tags": ["recruiter"], "summary": "My candidates per department", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Series"}}}}},
        "/recruiter/candidates/by-education": {"get": {"tags": ["recruiter"], "summary": "My candidates per education level", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Series"}}}}},
        "/recruiter/candidates/by-title": {"get": {"tags": ["recruiter"], "summary": "My candidates per job title", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Series"}}}}},
        "/recruiter/candidates/by-month": {"get": {"tags": ["recruiter"], "summary": "My candidates per month", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Series"}}}}},
        "/recruiter/offers/by-department": {"get": {"tags": ["recruiter"], "summary": "My offers per department", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Series"}}}}},
        "/recruiter/interviews/by-status": {"get": {"tags": ["recruiter"], "summary": "My interviews per status", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Series"}}}}},
        "/recruiter/offers": {"get": {"tags": ["recruiter"], "summary": "My offers with candidate counts", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/OfferSummary"}}}}}},
        "/recruiter/interviews/upcoming": {"get": {"tags": ["recruiter"], "summary": "Upcoming pending interviews", "security": [{"BearerAuth": []}],
            "parameters": [{"name": "limit", "in": "query", "type": "integer", "minimum": 1, "maximum": 50}],
            "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/InterviewSummary"}}}, "400": {"description": "Invalid parameter"}}}},
        "/recruiter/interviews/calendar": {"get": {"tags": ["recruiter"], "summary": "My interviews per day this week", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Series"}}}}}
    },
    "definitions": {
        "Point": {"type": "object", "properties": {"name": {"type": "string"}, "value": {"type": "integer"}}},
        "DayPoint": {"type": "object", "properties": {"date": {"type": "string"}, "name": {"type": "string"}, "value": {"type": "integer"}}},
        "Series": {"type": "array", "items": {"$ref": "#/definitions/Point"}},
        "AdminSummary": {"type": "object", "properties": {
            "totalCandidats": {"type": "integer"}, "totalOffres": {"type": "integer"},
            "totalEntretiens": {"type": "integer"}, "totalRecruteurs": {"type": "integer"},
            "candidatsTendance": {"$ref": "#/definitions/Series"}, "offresTendance": {"$ref": "#/definitions/Series"},
            "entretiensTendance": {"$ref": "#/definitions/Series"}}},
        "RecruiterSummary": {"type": "object", "properties": {
            "totalMesCandidats": {"type": "integer"}, "totalMesOffres": {"type": "integer"},
            "totalMesEntretiens": {"type": "integer"}, "entretiensPending": {"type": "integer"},
            "candidatsTendance": {"$ref": "#/definitions/Series"}, "entretiensTendance": {"$ref": "#/definitions/Series"}}},
        "OfferSummary": {"type": "object", "properties": {
            "id": {"type": "string", "format": "uuid"}, "poste": {"type": "string"},
            "nbrCandidat": {"type": "integer"}, "expiration": {"type": "string", "format": "date-time"}}},
        "InterviewSummary": {"type": "object", "properties": {
            "id": {"type": "string", "format": "uuid"}, "candidat_prenom": {"type": "string"},
            "candidat_nom": {"type": "string"}, "poste": {"type": "string"},
            "date_heure": {"type": "string", "format": "date-time"}, "type": {"type": "string"},
            "lien_ou_adresse": {"type": "string"}, "status": {"type": "string"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Recruitment dashboard statistics API",
	Description:      "Read-only counts, breakdowns and trends over offers, candidates and interviews.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
