package auth

import (
	"errors"

	"bookly/internal/db"
)

// ErrForbidden means the actor may not act on the booking at all, as opposed
// to requesting a move the lifecycle forbids.
var ErrForbidden = errors.New("access denied")

// CanActOn is the single capability check for booking access: admins may act
// on any booking, customers and providers only on their own. Which lifecycle
// moves are legal is the state machine's concern, not this one's.
func CanActOn(actor Actor, bk *db.Booking) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RoleProvider:
		return bk.ProviderID == actor.ID
	case RoleCustomer:
		return bk.CustomerID == actor.ID
	default:
		return false
	}
}
