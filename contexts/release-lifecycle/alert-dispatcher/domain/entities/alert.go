package entities

import (
	"strings"
	"time"
)

type AlertType string

const (
	AlertTypeQueueBacklog     AlertType = "queue_backlog"
	AlertTypePublicationFound AlertType = "publication_found"
	AlertTypeMonitoringPaused AlertType = "monitoring_paused"
)

func ParseAlertType(raw string) (AlertType, bool) {
	switch AlertType(strings.ToLower(strings.TrimSpace(raw))) {
	case AlertTypeQueueBacklog:
		return AlertTypeQueueBacklog, true
	case AlertTypePublicationFound:
		return AlertTypePublicationFound, true
	case AlertTypeMonitoringPaused:
		return AlertTypeMonitoringPaused, true
	default:
		return "", false
	}
}

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Alert struct {
	AlertID          string
	Type             AlertType
	Title            string
	Message          string
	Severity         Severity
	Source           string
	RelatedReleaseID string
	Metadata         map[string]string
	CreatedAt        time.Time
}

// Payload is the wire shape every sink delivers.
type Payload struct {
	ID               string            `json:"id"`
	Type             string            `json:"type"`
	Title            string            `json:"title"`
	Message          string            `json:"message"`
	Severity         string            `json:"severity"`
	Source           string            `json:"source,omitempty"`
	RelatedReleaseID string            `json:"related_release_id,omitempty"`
	Metadata         map[string]string `json:"metadata,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

func (a Alert) Payload() Payload {
	return Payload{
		ID:               a.AlertID,
		Type:             string(a.Type),
		Title:            a.Title,
		Message:          a.Message,
		Severity:         string(a.Severity),
		Source:           a.Source,
		RelatedReleaseID: a.RelatedReleaseID,
		Metadata:         a.Metadata,
		CreatedAt:        a.CreatedAt,
	}
}

// PublicationInfo describes a newly found, still unverified publication.
type PublicationInfo struct {
	MonitoringID string
	ReleaseID    string
	ReleaseTitle string
	ResultID     string
	FoundURL     string
	WebsiteName  string
}

type PausedInfo struct {
	MonitoringID        string
	ReleaseID           string
	ReleaseTitle        string
	ConsecutiveFailures int
	Reason              string
}
