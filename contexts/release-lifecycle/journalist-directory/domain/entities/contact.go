package entities

import "strings"

type JournalistContact struct {
	ContactID   string
	Name        string
	Email       string
	Phone       string
	Website     string
	SocialMedia string
	MediaOutlet string
	Category    string
	Region      string
}

func (c JournalistContact) ValidateUpsert() bool {
	return strings.TrimSpace(c.Name) != "" && strings.TrimSpace(c.MediaOutlet) != ""
}

// ReleaseProfile is the slice of a release the matcher reads.
type ReleaseProfile struct {
	ReleaseID   string
	MediaOutlet string
	Category    string
	Region      string
}

// RankedContact is a matched contact with its category/region overlap.
type RankedContact struct {
	Contact JournalistContact
	Overlap int
}
