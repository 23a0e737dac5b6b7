package order

import (
	"fmt"

	"deliveryhub/internal/pkg/errs"
)

// Status is the lifecycle state of an order. The numeric order of the constants is the
// order of the lifecycle, which lets persistence and tests compare ranks directly.
type Status int

const (
	// Unknown catches uninitialised values.
	Unknown Status = iota
	// Pending orders wait in the delivery pool for an agent to claim them.
	Pending
	// Accepted orders have been claimed by exactly one agent.
	Accepted
	PickedUp
	OnTheWay
	// Delivered is terminal.
	Delivered
)

var statusNames = map[Status]string{
	Pending:   "pending",
	Accepted:  "accepted",
	PickedUp:  "picked_up",
	OnTheWay:  "on_the_way",
	Delivered: "delivered",
}

// ParseStatus converts the wire name ("picked_up", ...) into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a known status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. ones read from storage.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

func (s Status) IsTerminal() bool {
	return s == Delivered
}

// Successor returns the unique next status, or false for Delivered and invalid values.
func (s Status) Successor() (Status, bool) {
	if s.Validate() != nil || s.IsTerminal() {
		return Unknown, false
	}
	return s + 1, true
}

// Claim performs the pending -> accepted step. Any other starting status means some
// agent already owns the order.
func (s Status) Claim() (Status, error) {
	if s != Pending {
		return Unknown, fmt.Errorf("%w: order is %s", ErrAlreadyAssigned, s)
	}
	return Accepted, nil
}

// Advance performs one post-claim step. target must be the unique successor of s, and
// s must not be Pending (that step belongs to Claim).
func (s Status) Advance(target Status) (Status, error) {
	next, ok := s.Successor()
	if !ok || s == Pending || target != next {
		return Unknown, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s, target)
	}
	return next, nil
}

// ValidateCanHaveAgent checks the invariant "agent assigned iff status is not pending".
func (s Status) ValidateCanHaveAgent(assigned bool) error {
	if assigned && s == Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have an agent", s),
		)
	}
	if !assigned && s != Pending {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no agent", s),
		)
	}
	return nil
}
