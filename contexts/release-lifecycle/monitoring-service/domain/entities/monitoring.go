package entities

import (
	"strings"
	"time"
)

type MonitoringStatus string

const (
	MonitoringStatusActive   MonitoringStatus = "active"
	MonitoringStatusPaused   MonitoringStatus = "paused"
	MonitoringStatusComplete MonitoringStatus = "complete"
)

func ParseMonitoringStatus(raw string) (MonitoringStatus, bool) {
	switch MonitoringStatus(strings.ToLower(strings.TrimSpace(raw))) {
	case MonitoringStatusActive:
		return MonitoringStatusActive, true
	case MonitoringStatusPaused:
		return MonitoringStatusPaused, true
	case MonitoringStatusComplete:
		return MonitoringStatusComplete, true
	default:
		return "", false
	}
}

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

func ParseFrequency(raw string) (Frequency, bool) {
	switch Frequency(strings.ToLower(strings.TrimSpace(raw))) {
	case FrequencyDaily:
		return FrequencyDaily, true
	case FrequencyWeekly:
		return FrequencyWeekly, true
	default:
		return "", false
	}
}

func (f Frequency) Interval() time.Duration {
	if f == FrequencyWeekly {
		return 7 * 24 * time.Hour
	}
	return 24 * time.Hour
}

// Verified is three-valued: a result nobody reviewed yet is neither true nor false.
type Verified int8

const (
	VerifiedUnset Verified = iota
	VerifiedTrue
	VerifiedFalse
)

func VerifiedFromBool(value bool) Verified {
	if value {
		return VerifiedTrue
	}
	return VerifiedFalse
}

func (v Verified) String() string {
	switch v {
	case VerifiedTrue:
		return "true"
	case VerifiedFalse:
		return "false"
	default:
		return "unset"
	}
}

// Bool returns nil while unset.
func (v Verified) Bool() *bool {
	switch v {
	case VerifiedTrue:
		value := true
		return &value
	case VerifiedFalse:
		value := false
		return &value
	default:
		return nil
	}
}

type Monitoring struct {
	MonitoringID        string
	ReleaseID           string
	ReleaseTitle        string
	TargetWebsites      []string
	Frequency           Frequency
	LastChecked         *time.Time
	Status              MonitoringStatus
	ConsecutiveFailures int
	Keywords            []string
	CreatedAt           time.Time
	UpdatedAt           time.Time
	Version             int64
	Results             []MonitoringResult
}

type MonitoringResult struct {
	ResultID     string
	MonitoringID string
	FoundURL     string
	FoundAt      time.Time
	WebsiteName  string
	Excerpt      string
	Verified     Verified
	CreatedAt    time.Time
}

type CycleOutcome string

const (
	CycleOutcomeSucceeded CycleOutcome = "succeeded"
	CycleOutcomeFailed    CycleOutcome = "failed"
	CycleOutcomeCancelled CycleOutcome = "cancelled"
)

type CheckCycle struct {
	CycleID      string
	MonitoringID string
	StartedAt    time.Time
	FinishedAt   time.Time
	Attempts     int
	Outcome      CycleOutcome
	NewResults   int
	Error        string
}

// Candidate is one publication reported by a checker.
type Candidate struct {
	URL         string
	WebsiteName string
	FoundAt     time.Time
	Excerpt     string
}

// Fingerprint is what a checker looks for on target sites.
type Fingerprint struct {
	Title    string
	Keywords []string
}

func (f Fingerprint) String() string {
	parts := make([]string, 0, len(f.Keywords)+1)
	if title := strings.TrimSpace(f.Title); title != "" {
		parts = append(parts, title)
	}
	for _, keyword := range f.Keywords {
		if keyword = strings.TrimSpace(keyword); keyword != "" {
			parts = append(parts, keyword)
		}
	}
	return strings.Join(parts, " | ")
}

// Matches reports whether text mentions the title or any keyword, ignoring case.
func (f Fingerprint) Matches(text string) bool {
	lowered := strings.ToLower(text)
	if lowered == "" {
		return false
	}
	if title := strings.ToLower(strings.TrimSpace(f.Title)); title != "" && strings.Contains(lowered, title) {
		return true
	}
	for _, keyword := range f.Keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" && strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

// ReleaseSnapshot is the stored release a monitoring is derived from.
type ReleaseSnapshot struct {
	ReleaseID      string
	Title          string
	MediaOutlet    string
	PublicationURL string
	// Eligible is true once the release is approved or published.
	Eligible bool
}
