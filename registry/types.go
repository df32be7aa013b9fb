// Package registry tracks bookshop participants and their roles.
//
// A participant is created by self-registration and holds exactly one role
// from a closed set. The only role escalation is PendingSeller to
// ApprovedSeller, gated by the shop admin. The admin itself is fixed at
// shop construction and never appears in the participant store.
package registry

import (
	"fmt"

	"github.com/centralb/bookshop-go/identity"
)

// Role is a participant's role in the bookshop.
type Role uint8

const (
	// RoleUnregistered is the implicit role of an unknown address.
	RoleUnregistered Role = iota

	// RoleReader may buy books.
	RoleReader

	// RolePendingSeller registered with intent to sell, awaiting approval.
	RolePendingSeller

	// RoleApprovedSeller may list and sell books.
	RoleApprovedSeller

	// RoleAdmin is the shop operator. Exactly one exists, set at
	// construction; it never lives in the participant store.
	RoleAdmin
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleUnregistered:
		return "unregistered"
	case RoleReader:
		return "reader"
	case RolePendingSeller:
		return "pending-seller"
	case RoleApprovedSeller:
		return "approved-seller"
	case RoleAdmin:
		return "admin"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	return r <= RoleAdmin
}

// Participant is a registered bookshop user.
type Participant struct {
	Address identity.Address
	Role    Role
}

// NewParticipant creates a participant from a registration request.
// wantsToSell chooses between Reader and PendingSeller.
func NewParticipant(addr identity.Address, wantsToSell bool) *Participant {
	role := RoleReader
	if wantsToSell {
		role = RolePendingSeller
	}
	return &Participant{Address: addr, Role: role}
}

// Approve transitions the participant from PendingSeller to ApprovedSeller.
// Any other starting role, including an already approved seller, is an
// invalid transition.
func (p *Participant) Approve() error {
	if p.Role != RolePendingSeller {
		return fmt.Errorf("%w: %s -> approved-seller", ErrInvalidRoleTransition, p.Role)
	}
	p.Role = RoleApprovedSeller
	return nil
}
