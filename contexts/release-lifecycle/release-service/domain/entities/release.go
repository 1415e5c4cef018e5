package entities

import (
	"strings"
	"time"
)

type ReleaseStatus string

const (
	ReleaseStatusDraft     ReleaseStatus = "draft"
	ReleaseStatusPending   ReleaseStatus = "pending"
	ReleaseStatusApproved  ReleaseStatus = "approved"
	ReleaseStatusScheduled ReleaseStatus = "scheduled"
	ReleaseStatusPublished ReleaseStatus = "published"
	ReleaseStatusRejected  ReleaseStatus = "rejected"
)

func ParseReleaseStatus(raw string) (ReleaseStatus, bool) {
	status := ReleaseStatus(strings.ToLower(strings.TrimSpace(raw)))
	switch status {
	case ReleaseStatusDraft, ReleaseStatusPending, ReleaseStatusApproved,
		ReleaseStatusScheduled, ReleaseStatusPublished, ReleaseStatusRejected:
		return status, true
	default:
		return "", false
	}
}

// Terminal reports whether no forward moderation work remains.
// Rejected can still be resubmitted.
func (s ReleaseStatus) Terminal() bool {
	return s == ReleaseStatusPublished || s == ReleaseStatusRejected
}

// EligibleForMonitoring reports whether a monitoring should exist for this status.
func (s ReleaseStatus) EligibleForMonitoring() bool {
	return s == ReleaseStatusApproved || s == ReleaseStatusPublished
}

type ClientType string

const (
	ClientTypeObservatory ClientType = "observatory"
	ClientTypeResearcher  ClientType = "researcher"
	ClientTypePolitician  ClientType = "politician"
	ClientTypeInstitution ClientType = "institution"
	ClientTypeJournalist  ClientType = "journalist"
)

func ParseClientType(raw string) (ClientType, bool) {
	value := ClientType(strings.ToLower(strings.TrimSpace(raw)))
	switch value {
	case ClientTypeObservatory, ClientTypeResearcher, ClientTypePolitician,
		ClientTypeInstitution, ClientTypeJournalist:
		return value, true
	default:
		return "", false
	}
}

type Release struct {
	ReleaseID         string
	Title             string
	Subtitle          string
	Content           string
	Author            string
	ClientName        string
	ClientType        ClientType
	MediaOutlet       string
	PublicationURL    string
	PublicationDate   *time.Time
	Category          string
	Region            string
	Status            ReleaseStatus
	TargetJournalists []string
	CreatedAt         time.Time
	SubmittedAt       *time.Time
	UpdatedAt         time.Time
	Version           int64
	ModerationHistory []ModerationAction
}

func (r Release) ValidateCreate() bool {
	if strings.TrimSpace(r.Title) == "" || strings.TrimSpace(r.ClientName) == "" {
		return false
	}
	_, ok := ParseClientType(string(r.ClientType))
	return ok
}
