package registry

import "errors"

var (
	// ErrAlreadyRegistered indicates the address already holds a role.
	ErrAlreadyRegistered = errors.New("registry: address already registered")

	// ErrNotRegistered indicates the address holds no role.
	ErrNotRegistered = errors.New("registry: address not registered")

	// ErrInvalidRoleTransition indicates a role change outside the allowed
	// PendingSeller -> ApprovedSeller escalation.
	ErrInvalidRoleTransition = errors.New("registry: invalid role transition")

	// ErrZeroAddress indicates the all-zero address was used as a participant.
	ErrZeroAddress = errors.New("registry: zero address")

	// ErrNilParam indicates a required parameter was nil.
	ErrNilParam = errors.New("registry: nil parameter")
)
