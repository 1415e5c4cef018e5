package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateReleaseRequest struct {
	Title           string     `json:"title"`
	Subtitle        string     `json:"subtitle"`
	Content         string     `json:"content"`
	Author          string     `json:"author"`
	ClientName      string     `json:"client_name"`
	ClientType      string     `json:"client_type"`
	MediaOutlet     string     `json:"media_outlet"`
	PublicationURL  string     `json:"publication_url"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	Category        string     `json:"category"`
	Region          string     `json:"region"`
}

type TransitionReleaseRequest struct {
	TargetStatus    string     `json:"target_status"`
	ExpectedStatus  string     `json:"expected_status,omitempty"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
}

type ApproveReleaseRequest struct {
	Comments string `json:"comments"`
}

type RejectReleaseRequest struct {
	Feedback  string   `json:"feedback"`
	Templates []string `json:"templates"`
	Highlight string   `json:"highlight"`
}

type EditReleaseRequest struct {
	Title         string `json:"title"`
	EditedContent string `json:"edited_content"`
	Comments      string `json:"comments"`
}

type ModerationActionRequest struct {
	Action        string `json:"action"`
	Comments      string `json:"comments"`
	EditedContent string `json:"edited_content"`
}

type ThresholdsDTO struct {
	RiskHigh      float64 `json:"risk_high"`
	RiskLow       float64 `json:"risk_low"`
	SimilarityMax float64 `json:"similarity_max"`
	EngagementMin float64 `json:"engagement_min"`
}

type ModerationActionDTO struct {
	ActionID      string    `json:"action_id"`
	ReleaseID     string    `json:"release_id"`
	ModeratorID   string    `json:"moderator_id"`
	ModeratorName string    `json:"moderator_name,omitempty"`
	Action        string    `json:"action"`
	Comments      string    `json:"comments,omitempty"`
	EditedContent string    `json:"edited_content,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReleaseDTO struct {
	ReleaseID         string                `json:"release_id"`
	Title             string                `json:"title"`
	Subtitle          string                `json:"subtitle,omitempty"`
	Content           string                `json:"content"`
	Author            string                `json:"author,omitempty"`
	ClientName        string                `json:"client_name"`
	ClientType        string                `json:"client_type"`
	MediaOutlet       string                `json:"media_outlet,omitempty"`
	PublicationURL    string                `json:"publication_url,omitempty"`
	PublicationDate   *time.Time            `json:"publication_date,omitempty"`
	Category          string                `json:"category,omitempty"`
	Region            string                `json:"region,omitempty"`
	Status            string                `json:"status"`
	Priority          string                `json:"priority"`
	TargetJournalists []string              `json:"target_journalists"`
	Version           int64                 `json:"version"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
	ModerationHistory []ModerationActionDTO `json:"moderation_history"`
}

type FlaggedTermDTO struct {
	Term     string `json:"term"`
	Position int    `json:"position"`
	Severity string `json:"severity"`
}

type AnalysisDTO struct {
	SimilarityScore      float64          `json:"similarity_score"`
	RiskScore            float64          `json:"risk_score"`
	EngagementPrediction float64          `json:"engagement_prediction"`
	FlaggedTerms         []FlaggedTermDTO `json:"flagged_terms"`
	SuggestedAction      string           `json:"suggested_action"`
	Reasoning            string           `json:"reasoning"`
	Scored               bool             `json:"scored"`
}

type QueueItemDTO struct {
	Release  ReleaseDTO  `json:"release"`
	Priority string      `json:"priority"`
	Analysis AnalysisDTO `json:"analysis"`
}

type ReleaseResponse struct {
	Release ReleaseDTO `json:"release"`
}

type ListReleasesResponse struct {
	Items []ReleaseDTO `json:"items"`
}

type QueueResponse struct {
	Items []QueueItemDTO `json:"items"`
	Total int            `json:"total"`
}

type ModerationActionResponse struct {
	Action ModerationActionDTO `json:"action"`
}

type ListModerationActionsResponse struct {
	Items []ModerationActionDTO `json:"items"`
}

type ThresholdsResponse struct {
	Thresholds ThresholdsDTO `json:"thresholds"`
}
