package services

import "pressroom/contexts/release-lifecycle/release-service/domain/entities"

// AllowedTargets lists the statuses reachable from one step out of from.
// Published is terminal; rejected may be resubmitted.
func AllowedTargets(from entities.ReleaseStatus) []entities.ReleaseStatus {
	switch from {
	case entities.ReleaseStatusDraft:
		return []entities.ReleaseStatus{entities.ReleaseStatusPending}
	case entities.ReleaseStatusPending:
		return []entities.ReleaseStatus{entities.ReleaseStatusApproved, entities.ReleaseStatusRejected}
	case entities.ReleaseStatusApproved:
		return []entities.ReleaseStatus{entities.ReleaseStatusPublished, entities.ReleaseStatusScheduled}
	case entities.ReleaseStatusScheduled:
		return []entities.ReleaseStatus{entities.ReleaseStatusPublished}
	case entities.ReleaseStatusRejected:
		return []entities.ReleaseStatus{entities.ReleaseStatusPending}
	case entities.ReleaseStatusPublished:
		return nil
	default:
		return nil
	}
}

func CanTransition(from entities.ReleaseStatus, to entities.ReleaseStatus) bool {
	for _, candidate := range AllowedTargets(from) {
		if candidate == to {
			return true
		}
	}
	return false
}

// Predecessors lists the statuses from which to is reachable in one step.
func Predecessors(to entities.ReleaseStatus) []entities.ReleaseStatus {
	var out []entities.ReleaseStatus
	for _, from := range []entities.ReleaseStatus{
		entities.ReleaseStatusDraft,
		entities.ReleaseStatusPending,
		entities.ReleaseStatusApproved,
		entities.ReleaseStatusScheduled,
		entities.ReleaseStatusPublished,
		entities.ReleaseStatusRejected,
	} {
		if CanTransition(from, to) {
			out = append(out, from)
		}
	}
	return out
}

// Superseded reports whether current was reached by another writer leaving
// one of to's predecessors, i.e. a caller asking for to lost a race rather
// than asked for an illegal move.
func Superseded(current entities.ReleaseStatus, to entities.ReleaseStatus) bool {
	for _, from := range Predecessors(to) {
		if CanTransition(from, current) {
			return true
		}
	}
	return false
}
