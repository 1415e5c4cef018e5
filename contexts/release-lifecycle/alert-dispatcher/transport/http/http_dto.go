package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type AlertDTO struct {
	AlertID          string            `json:"alert_id"`
	Type             string            `json:"type"`
	Title            string            `json:"title"`
	Message          string            `json:"message"`
	Severity         string            `json:"severity"`
	Source           string            `json:"source"`
	RelatedReleaseID string            `json:"related_release_id,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

type ListAlertsResponse struct {
	Items []AlertDTO `json:"items"`
}

type EvaluateQueueRequest struct {
	PendingCount int `json:"pending_count"`
}

type EvaluateQueueResponse struct {
	Raised bool      `json:"raised"`
	Alert  *AlertDTO `json:"alert,omitempty"`
}
