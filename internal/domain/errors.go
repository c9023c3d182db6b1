package domain

import "errors"

// Sentinel errors used across layers.
var (
	ErrNotFound     = errors.New("not found")
	ErrNoDraft      = errors.New("no draft is open")
	ErrDraftOpen    = errors.New("a draft is already open")
	ErrUnknownField = errors.New("unknown draft field")
)
