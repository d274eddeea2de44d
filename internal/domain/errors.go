package domain

import "errors"

var (
	// ErrNotFound covers missing users and templates. Callers recover by
	// re-running onboarding or rejecting the id; it is never fatal.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate marks an insert that hit an existing natural key.
	// Reseeding and re-granting treat it as a no-op.
	ErrDuplicate = errors.New("duplicate")

	// ErrValidation marks user-correctable input problems. No state is
	// mutated when it is returned.
	ErrValidation = errors.New("validation")
)
