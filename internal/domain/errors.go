package domain

import "errors"

// Sentinel errors shared across services.
var (
	ErrNotFound     = errors.New("not found")
	ErrAccessDenied = errors.New("access denied")
	ErrNoSession    = errors.New("no active wizard session")
)
