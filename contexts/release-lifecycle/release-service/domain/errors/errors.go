package errors

import "errors"

var (
	ErrReleaseNotFound         = errors.New("release not found")
	ErrValidation              = errors.New("invalid release input")
	ErrInvalidTransition       = errors.New("invalid release status transition")
	ErrConflict                = errors.New("release was modified concurrently")
	ErrUnauthorizedActor       = errors.New("moderator identity is required")
	ErrAnalyzerUnavailable     = errors.New("content analyzer unavailable")
	ErrUnknownFeedbackTemplate = errors.New("unknown feedback template")
)
