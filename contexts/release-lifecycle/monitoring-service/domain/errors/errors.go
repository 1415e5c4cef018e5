package errors

import "errors"

var (
	ErrMonitoringNotFound  = errors.New("monitoring not found")
	ErrResultNotFound      = errors.New("monitoring result not found")
	ErrValidation          = errors.New("invalid monitoring input")
	ErrInvalidTransition   = errors.New("invalid monitoring status transition")
	ErrConflict            = errors.New("monitoring was modified concurrently")
	ErrMonitoringNotActive = errors.New("monitoring is not active")
	ErrCheckerUnavailable  = errors.New("publication checker unavailable")
	ErrReleaseNotFound     = errors.New("release not found")
	ErrReleaseNotEligible  = errors.New("release is not approved or published")
)
