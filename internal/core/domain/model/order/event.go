package order

// EventKind names a committed lifecycle transition.
type EventKind int

const (
	EventCreated EventKind = iota + 1
	EventClaimed
	EventStatusUpdated
)

func (k EventKind) String() string {
	switch k {
	case EventCreated:
		return "order.created"
	case EventClaimed:
		return "order.claimed"
	case EventStatusUpdated:
		return "order.status_updated"
	default:
		return "order.unknown"
	}
}

// Event pairs a transition with the order state it produced. The snapshot is a copy,
// so later mutations of the aggregate never leak into an already recorded event.
type Event struct {
	kind     EventKind
	snapshot *Order
}

func (e Event) Kind() EventKind {
	return e.kind
}

// Order returns the snapshot taken when the event was recorded.
func (e Event) Order() *Order {
	return e.snapshot
}

// NewEvent records kind against a snapshot of o.
func NewEvent(kind EventKind, o *Order) Event {
	return Event{kind: kind, snapshot: o.snapshot()}
}
