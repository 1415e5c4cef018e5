package services

import (
	"net/url"
	"strings"
	"time"

	"pressroom/contexts/release-lifecycle/monitoring-service/domain/entities"
)

// NormalizeSite lowercases a target and drops scheme, path and a trailing dot.
// Plain outlet names pass through lowercased.
func NormalizeSite(site string) string {
	site = strings.ToLower(strings.TrimSpace(site))
	if site == "" {
		return ""
	}
	if strings.Contains(site, "://") {
		if parsed, err := url.Parse(site); err == nil && parsed.Host != "" {
			site = parsed.Host
		}
	} else if idx := strings.IndexByte(site, '/'); idx > 0 {
		site = site[:idx]
	}
	return strings.TrimSuffix(site, ".")
}

// NormalizeTargets dedupes targets keeping first-seen order.
func NormalizeTargets(sites []string) []string {
	seen := make(map[string]struct{}, len(sites))
	out := make([]string, 0, len(sites))
	for _, site := range sites {
		normalized := NormalizeSite(site)
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, normalized)
	}
	return out
}

// NormalizeFoundURL is the identity used for result uniqueness.
func NormalizeFoundURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return strings.TrimSuffix(raw, "/")
	}
	parsed.Scheme = strings.ToLower(parsed.Scheme)
	parsed.Host = strings.ToLower(parsed.Host)
	parsed.Fragment = ""
	parsed.RawFragment = ""
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	} else {
		parsed.Path = ""
	}
	parsed.RawPath = ""
	return parsed.String()
}

func FingerprintFor(monitoring entities.Monitoring) entities.Fingerprint {
	return entities.Fingerprint{
		Title:    strings.TrimSpace(monitoring.ReleaseTitle),
		Keywords: append([]string(nil), monitoring.Keywords...),
	}
}

// IsDue reports whether an active monitoring has waited a full frequency interval.
func IsDue(monitoring entities.Monitoring, now time.Time) bool {
	if monitoring.Status != entities.MonitoringStatusActive {
		return false
	}
	if monitoring.LastChecked == nil {
		return true
	}
	return !now.Before(monitoring.LastChecked.Add(monitoring.Frequency.Interval()))
}

// ShouldPause is true only for the failure that crosses the threshold on an
// active monitoring, so a paused one is never paused again.
func ShouldPause(monitoring entities.Monitoring, threshold int) bool {
	if threshold <= 0 {
		return false
	}
	return monitoring.Status == entities.MonitoringStatusActive && monitoring.ConsecutiveFailures >= threshold
}

func CanTransition(from entities.MonitoringStatus, to entities.MonitoringStatus) bool {
	switch from {
	case entities.MonitoringStatusActive:
		return to == entities.MonitoringStatusPaused || to == entities.MonitoringStatusComplete
	case entities.MonitoringStatusPaused:
		return to == entities.MonitoringStatusActive || to == entities.MonitoringStatusComplete
	default:
		return false
	}
}
