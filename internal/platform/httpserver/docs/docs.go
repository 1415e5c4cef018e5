// Package docs registers the OpenAPI document served under /swagger/.
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
    "paths": {
        "/api/releases": {
            "get": {"tags": ["releases"], "summary": "List releases", "parameters": [
                {"type": "string", "name": "status", "in": "query"},
                {"type": "string", "name": "client_type", "in": "query"},
                {"type": "string", "name": "search", "in": "query"}
            ], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["releases"], "summary": "Create a draft release", "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}}}
        },
        "/api/releases/{release_id}": {
            "get": {"tags": ["releases"], "summary": "Get a release", "parameters": [{"type": "string", "name": "release_id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/api/releases/{release_id}/submit": {
            "post": {"tags": ["releases"], "summary": "Submit for moderation", "responses": {"200": {"description": "OK"}, "409": {"description": "Invalid transition"}}}
        },
        "/api/releases/{release_id}/transition": {
            "post": {"tags": ["releases"], "summary": "Move a release to another status", "responses": {"200": {"description": "OK"}, "409": {"description": "Invalid transition or conflict"}}}
        },
        "/api/releases/{release_id}/approve": {
            "post": {"tags": ["moderation"], "summary": "Approve a pending release", "responses": {"200": {"description": "OK"}, "401": {"description": "Moderator required"}}}
        },
        "/api/releases/{release_id}/reject": {
            "post": {"tags": ["moderation"], "summary": "Reject a pending release with feedback", "responses": {"200": {"description": "OK"}}}
        },
        "/api/releases/{release_id}/edit": {
            "post": {"tags": ["moderation"], "summary": "Edit a pending release", "responses": {"200": {"description": "OK"}}}
        },
        "/api/releases/{release_id}/actions": {
            "get": {"tags": ["moderation"], "summary": "Moderation history", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["moderation"], "summary": "Append a moderation action", "responses": {"201": {"description": "Created"}}}
        },
        "/api/releases/{release_id}/analyze": {
            "post": {"tags": ["moderation"], "summary": "Analyze release content", "responses": {"200": {"description": "OK"}, "503": {"description": "Analyzer unavailable"}}}
        },
        "/api/releases/{release_id}/monitoring": {
            "get": {"tags": ["monitoring"], "summary": "Monitoring of a release", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}}
        },
        "/api/moderation/queue": {
            "get": {"tags": ["moderation"], "summary": "Prioritized moderation queue", "responses": {"200": {"description": "OK"}}}
        },
        "/api/moderation/thresholds": {
            "get": {"tags": ["moderation"], "summary": "Current thresholds", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["moderation"], "summary": "Replace thresholds", "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error"}}}
        },
        "/api/monitorings": {
            "get": {"tags": ["monitoring"], "summary": "List monitorings", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["monitoring"], "summary": "Create the monitoring of an approved or published release", "responses": {"200": {"description": "Existing"}, "201": {"description": "Created"}, "404": {"description": "Unknown release"}, "409": {"description": "Release not eligible"}}}
        },
        "/api/monitorings/{monitoring_id}": {
            "get": {"tags": ["monitoring"], "summary": "Get a monitoring with results", "responses": {"200": {"description": "OK"}}}
        },
        "/api/monitorings/{monitoring_id}/check": {
            "post": {"tags": ["monitoring"], "summary": "Run one check cycle", "responses": {"200": {"description": "OK"}, "409": {"description": "Not active"}}}
        },
        "/api/monitorings/{monitoring_id}/pause": {
            "post": {"tags": ["monitoring"], "summary": "Pause", "responses": {"200": {"description": "OK"}}}
        },
        "/api/monitorings/{monitoring_id}/resume": {
            "post": {"tags": ["monitoring"], "summary": "Resume", "responses": {"200": {"description": "OK"}}}
        },
        "/api/monitorings/{monitoring_id}/complete": {
            "post": {"tags": ["monitoring"], "summary": "Complete", "responses": {"200": {"description": "OK"}}}
        },
        "/api/monitorings/{monitoring_id}/targets": {
            "put": {"tags": ["monitoring"], "summary": "Replace targets and frequency", "responses": {"200": {"description": "OK"}}}
        },
        "/api/monitorings/{monitoring_id}/cycles": {
            "get": {"tags": ["monitoring"], "summary": "Recent check cycles", "responses": {"200": {"description": "OK"}}}
        },
        "/api/monitoring-results/{result_id}/verify": {
            "post": {"tags": ["monitoring"], "summary": "Confirm or reject a found publication", "responses": {"200": {"description": "OK"}}}
        },
        "/api/journalists": {
            "get": {"tags": ["journalists"], "summary": "Search contacts", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["journalists"], "summary": "Create a contact", "responses": {"201": {"description": "Created"}}}
        },
        "/api/journalists/{contact_id}": {
            "get": {"tags": ["journalists"], "summary": "Get a contact", "responses": {"200": {"description": "OK"}}},
            "put": {"tags": ["journalists"], "summary": "Update a contact", "responses": {"200": {"description": "OK"}}}
        },
        "/api/journalists/match": {
            "post": {"tags": ["journalists"], "summary": "Journalists for a release outlet", "responses": {"200": {"description": "OK"}}}
        },
        "/api/alerts": {
            "get": {"tags": ["alerts"], "summary": "Recent alerts", "responses": {"200": {"description": "OK"}}}
        },
        "/api/alerts/queue-check": {
            "post": {"tags": ["alerts"], "summary": "Evaluate the moderation backlog", "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Pressroom API",
	Description:      "Press release lifecycle, moderation and publication monitoring.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
