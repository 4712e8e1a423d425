package service

import "errors"

var ErrNotFound = errors.New("not found")

var (
	ErrValidation   = errors.New("validation")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
)
