package entities

import "time"

type ModerationActionType string

const (
	ModerationActionApprove ModerationActionType = "approve"
	ModerationActionReject  ModerationActionType = "reject"
	ModerationActionEdit    ModerationActionType = "edit"
	ModerationActionComment ModerationActionType = "comment"
)

func (a ModerationActionType) Valid() bool {
	switch a {
	case ModerationActionApprove, ModerationActionReject, ModerationActionEdit, ModerationActionComment:
		return true
	default:
		return false
	}
}

// ModerationAction is append-only; nothing updates a stored action.
type ModerationAction struct {
	ActionID      string
	ReleaseID     string
	ModeratorID   string
	ModeratorName string
	Action        ModerationActionType
	Comments      string
	EditedContent string
	CreatedAt     time.Time
}

type PriorityTier string

const (
	PriorityHigh   PriorityTier = "high"
	PriorityMedium PriorityTier = "medium"
	PriorityLow    PriorityTier = "low"
)

// Rank orders tiers for the queue, lower first.
func (p PriorityTier) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type SuggestedAction string

const (
	SuggestApprove SuggestedAction = "approve"
	SuggestReject  SuggestedAction = "reject"
	SuggestReview  SuggestedAction = "review"
)

type FlaggedTerm struct {
	Term     string
	Position int
	Severity Severity
}

// Analysis is the machine view of a release. Scored is false when the
// analyzer could not be reached and the scores are zero values.
type Analysis struct {
	SimilarityScore      float64
	RiskScore            float64
	EngagementPrediction float64
	FlaggedTerms         []FlaggedTerm
	SuggestedAction      SuggestedAction
	Reasoning            string
	Scored               bool
}

type QueueItem struct {
	Release  Release
	Priority PriorityTier
	Analysis Analysis
}
