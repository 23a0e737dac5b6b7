package order

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/pkg/errs"
	"deliveryhub/internal/pkg/guard"
)

var (
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrItemsAreRequired is returned for an order without lines.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
	// ErrTotalIsInvalid is returned for a missing or negative total.
	ErrTotalIsInvalid = errs.NewValueIsInvalidError("total")

	// ErrAlreadyAssigned is returned when a claim loses: the order is no longer pending.
	// It is an expected outcome under contention, not a fault.
	ErrAlreadyAssigned = errors.New("order is already assigned")
	// ErrForbidden is returned when an agent other than the assignee advances an order.
	ErrForbidden = errors.New("order is assigned to another agent")
	// ErrIllegalTransition is returned when the requested status is not the unique successor.
	ErrIllegalTransition = errors.New("illegal status transition")
)

// Order is the aggregate root of the delivery lifecycle.
//
// Invariants:
//   - id, customerID, items, total and createdAt never change
//   - agentID is nil exactly while status is Pending
//   - status only moves forward, one step at a time
//   - version increases by one per accepted mutation
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	items      []Item
	total      kernel.Money
	status     Status
	agentID    *kernel.UUID
	createdAt  time.Time

	// version is the current revision; originalVersion is the revision the aggregate
	// was loaded or created with and is the compare-and-swap token for the next write.
	version         int
	originalVersion int

	events []Event
	guard  guard.ConstructorGuard
}

// NewOrder creates a pending, unassigned order and records an EventCreated.
//
//	total, _ := kernel.MoneyFromString("25.00")
//	item, _ := order.NewItem(productID, 2)
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, []order.Item{item}, total, time.Now())
func NewOrder(id, customerID kernel.UUID, items []Item, total kernel.Money, createdAt time.Time) (*Order, error) {
	o := &Order{
		status:          Pending,
		version:         1,
		originalVersion: 0,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setTotal(total),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	o.raise(EventCreated)
	return o, nil
}

// RestoreOrder rebuilds an order read from storage. It enforces the same invariants as
// NewOrder plus status/agent consistency, and records no events.
func RestoreOrder(
	id, customerID kernel.UUID,
	items []Item,
	total kernel.Money,
	status Status,
	agentID *kernel.UUID,
	createdAt time.Time,
	version int,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setTotal(total),
		o.setCreatedAt(createdAt),
		o.setStatus(status, agentID),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

// Items returns a copy of the order lines in their original order.
func (o *Order) Items() []Item {
	return slices.Clone(o.items)
}

func (o *Order) Total() kernel.Money {
	return o.total
}

func (o *Order) Status() Status {
	return o.status
}

// AssignedTo returns the claiming agent, or nil while the order is pending.
func (o *Order) AssignedTo() *kernel.UUID {
	if o.agentID == nil {
		return nil
	}
	id := *o.agentID
	return &id
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

func (o *Order) Version() int {
	return o.version
}

// OriginalVersion is the stored version this aggregate was based on (0 for a new order).
func (o *Order) OriginalVersion() int {
	return o.originalVersion
}

// IsNew reports whether the order has never been persisted.
func (o *Order) IsNew() bool {
	return o.originalVersion == 0
}

// Claim assigns the order to agentID and moves it to Accepted.
// Returns ErrAlreadyAssigned when the order is no longer pending.
func (o *Order) Claim(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if o.agentID != nil {
		return fmt.Errorf("%w: held by %s", ErrAlreadyAssigned, o.agentID)
	}

	next, err := o.status.Claim()
	if err != nil {
		return err
	}

	o.status = next
	o.agentID = &agentID
	o.version++
	o.raise(EventClaimed)
	return nil
}

// Advance moves the order one step forward on behalf of agentID.
//
// Errors:
//   - ErrIllegalTransition if the order was never claimed or target is not the unique successor
//   - ErrForbidden if agentID is not the assignee
func (o *Order) Advance(agentID kernel.UUID, target Status) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	if o.agentID == nil {
		return fmt.Errorf("%w: order %s is not claimed", ErrIllegalTransition, o.id)
	}
	if !o.agentID.IsEqual(agentID) {
		return ErrForbidden
	}

	next, err := o.status.Advance(target)
	if err != nil {
		return err
	}

	o.status = next
	o.version++
	o.raise(EventStatusUpdated)
	return nil
}

// PullEvents returns the recorded events in the order they happened and clears them.
func (o *Order) PullEvents() []Event {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) raise(kind EventKind) {
	o.events = append(o.events, NewEvent(kind, o))
}

func (o *Order) snapshot() *Order {
	c := *o
	c.items = slices.Clone(o.items)
	c.agentID = o.AssignedTo()
	c.events = nil
	return &c
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customerId", err)
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("items[%d]", i), err)
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setTotal(total kernel.Money) error {
	if err := total.Validate(); err != nil {
		return ErrTotalIsInvalid
	}
	o.total = total
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt
	return nil
}

func (o *Order) setStatus(status Status, agentID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if agentID != nil {
		if err := agentID.Validate(); err != nil {
			return err
		}
	}
	if err := status.ValidateCanHaveAgent(agentID != nil); err != nil {
		return err
	}
	o.status = status
	if agentID != nil {
		id := *agentID
		o.agentID = &id
	}
	return nil
}

func (o *Order) setVersion(version int) error {
	if version < 1 {
		return errs.NewValueIsInvalidErrorWithCause("version", fmt.Errorf("%d is not greater than 0", version))
	}
	o.version = version
	o.originalVersion = version
	return nil
}
