package booking

import (
	"errors"
	"fmt"
)

// Status is the lifecycle state of a booking. Bookings are created pending
// and only ever change state through Transition; rescheduling is modeled as
// cancel plus create, never as editing a booking's time.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no-show"
)

var ErrInvalidTransition = errors.New("invalid status transition")

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted, StatusNoShow:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %q", s)
	}
}

// Active reports whether the booking still holds its time slot. Cancelled,
// completed and no-show bookings free their slot permanently.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Terminal reports whether no further transitions are allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted || s == StatusNoShow
}

var allowedTransitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusCancelled: true,
		StatusCompleted: true,
		StatusNoShow:    true,
	},
	StatusCancelled: {},
	StatusCompleted: {},
	StatusNoShow:    {},
}

// TransitionPolicy tunes which edges of the lifecycle are permitted.
type TransitionPolicy struct {
	// AllowSkipConfirmation permits pending -> completed and
	// pending -> no-show without an intermediate confirmation.
	AllowSkipConfirmation bool
}

// Transition validates a lifecycle move and returns ErrInvalidTransition if
// the move is not structurally legal. Who may request a transition is the
// caller's concern; only the shape of the state graph is enforced here.
func Transition(from, to Status, policy TransitionPolicy) error {
	if allowedTransitions[from][to] {
		return nil
	}
	if policy.AllowSkipConfirmation && from == StatusPending &&
		(to == StatusCompleted || to == StatusNoShow) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
