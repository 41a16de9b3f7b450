// Package common defines sentinel errors shared by the FinHive layers.
// Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Validation errors, returned synchronously from add/update operations.
	ErrValidation = errors.New("validation error")

	// Remote mirror is not configured or cannot be reached.
	ErrMirrorUnavailable = errors.New("remote mirror unavailable")

	// Receipt blob storage is not configured.
	ErrBlobStoreDisabled = errors.New("blob store disabled")

	// Outbox job references a collection without a registered handler.
	ErrUnknownCollection = errors.New("unknown collection")
)
