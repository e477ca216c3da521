package domain

import "errors"

// Common errors
var (
	ErrNotFound        = errors.New("record not found")
	ErrPackageNotFound = errors.New("package not found")
	ErrCorrupt         = errors.New("stored document is corrupt")
	ErrInvalidHours    = errors.New("custom hours out of range")
	ErrInvalidPassword = errors.New("invalid credentials")
	ErrInvalidStatus   = errors.New("unknown order status")
	ErrDraftNotFound   = errors.New("booking draft not found or expired")
)
