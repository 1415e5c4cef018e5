package services

import (
	"sort"
	"strings"

	"pressroom/contexts/release-lifecycle/journalist-directory/domain/entities"
)

func NormalizeOutlet(outlet string) string {
	return strings.ToLower(strings.TrimSpace(outlet))
}

// Match keeps contacts of the release's outlet only. More shared
// category/region fields rank higher; equal rank falls back to contact id.
func Match(release entities.ReleaseProfile, directory []entities.JournalistContact) []entities.RankedContact {
	outlet := NormalizeOutlet(release.MediaOutlet)
	if outlet == "" {
		return []entities.RankedContact{}
	}

	matches := make([]entities.RankedContact, 0)
	for _, contact := range directory {
		if NormalizeOutlet(contact.MediaOutlet) != outlet {
			continue
		}
		matches = append(matches, entities.RankedContact{
			Contact: contact,
			Overlap: overlap(release.Category, contact.Category) + overlap(release.Region, contact.Region),
		})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Overlap != matches[j].Overlap {
			return matches[i].Overlap > matches[j].Overlap
		}
		return matches[i].Contact.ContactID < matches[j].Contact.ContactID
	})
	return matches
}

func overlap(a string, b string) int {
	a = strings.ToLower(strings.TrimSpace(a))
	if a == "" || a != strings.ToLower(strings.TrimSpace(b)) {
		return 0
	}
	return 1
}
