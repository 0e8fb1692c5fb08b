// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blog holds the content lifecycle, moderation, and aggregation
// services and the repository contracts they consume. Services never parse
// credentials: every operation takes an explicit access.Actor. Repository
// and storage failures propagate wrapped and unretried; a transition either
// fully persists or not at all.
package blog

import (
	"errors"
	"fmt"
)

// Domain error sentinels. Handlers map these to HTTP statuses with
// errors.Is; everything else is treated as a dependency failure.
var (
	// ErrNotFound means the referenced entity id does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the actor lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict means a uniqueness or referential constraint blocks the
	// operation (slug exhaustion, category still referenced by posts).
	ErrConflict = errors.New("conflict")

	// ErrSlugTaken is returned by repositories when a write hits the slug
	// unique index. Services retry with a numeric suffix before giving up
	// with ErrConflict; it should not escape the service layer.
	ErrSlugTaken = errors.New("slug already taken")
)

// ValidationError reports a missing or malformed request field. Validation
// failures are detected before any persistence happens.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// validation builds a *ValidationError.
func validation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// isSlugTaken reports whether a repository write failed on the slug
// unique index.
func isSlugTaken(err error) bool {
	return errors.Is(err, ErrSlugTaken)
}
