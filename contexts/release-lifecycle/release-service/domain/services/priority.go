package services

import (
	"strings"

	"pressroom/contexts/release-lifecycle/release-service/domain/entities"
)

var DefaultPriorityKeywords = []string{"urgente", "importante", "lançamento", "exclusivo"}

type PriorityPolicy struct {
	Keywords []string
}

func NewPriorityPolicy(keywords []string) PriorityPolicy {
	if len(keywords) == 0 {
		keywords = DefaultPriorityKeywords
	}
	normalized := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" {
			normalized = append(normalized, keyword)
		}
	}
	return PriorityPolicy{Keywords: normalized}
}

// Tier is pure over its inputs. A keyword hit wins over any client type rule.
func (p PriorityPolicy) Tier(title string, content string, clientType entities.ClientType) entities.PriorityTier {
	if p.matchesKeyword(title) || p.matchesKeyword(content) || clientType == entities.ClientTypePolitician {
		return entities.PriorityHigh
	}
	switch clientType {
	case entities.ClientTypeInstitution, entities.ClientTypeJournalist:
		return entities.PriorityMedium
	default:
		return entities.PriorityLow
	}
}

func (p PriorityPolicy) matchesKeyword(text string) bool {
	if text == "" {
		return false
	}
	lowered := strings.ToLower(text)
	for _, keyword := range p.Keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}
