// Package services implements mood classification, reply generation, the chat
// pipeline, analytics and accounts on top of a database.Store and a
// libs.Generator.
package services

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrNotFound           = errors.New("not found")
)
