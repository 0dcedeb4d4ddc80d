package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so services can translate them into domain errors.
//
// These represent factual states about resources, not validation failures:
// - ErrNotFound: entity does not exist in the store
// - ErrDuplicate: a uniqueness constraint rejected the write
// - ErrForeignKey: a referenced parent row does not exist
// - ErrConflict: entity in wrong state for the requested operation
// - ErrUnavailable: store temporarily unreachable
//
// For validation errors (bad input, missing fields), use pkg/domain-errors
// directly.
var (
	ErrNotFound    = errors.New("not found")
	ErrDuplicate   = errors.New("duplicate")
	ErrForeignKey  = errors.New("foreign key")
	ErrConflict    = errors.New("conflict")
	ErrUnavailable = errors.New("unavailable")
)
