package errors

import "errors"

var (
	ErrContactNotFound = errors.New("journalist contact not found")
	ErrValidation      = errors.New("invalid journalist contact input")
	ErrConflict        = errors.New("journalist contact already exists")
)
