package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) so the repository can translate them into domain errors or into the
// "absent" results the query surface promises.
//
// - ErrNotFound: entity does not exist in the store
// - ErrConflict: the store refused a write because of a uniqueness or key violation
//
// For validation errors (bad input, missing fields), use pkg/domain-errors directly.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)
