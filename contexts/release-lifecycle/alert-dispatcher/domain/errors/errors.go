package errors

import "errors"

var (
	ErrValidation = errors.New("invalid alert input")
	ErrSinkFailed = errors.New("alert sink delivery failed")
)
