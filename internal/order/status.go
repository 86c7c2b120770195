package order

// Status is the vendor-driven fulfillment state of an order.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusPreparing Status = "preparing"
	StatusReady     Status = "ready"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions is the explicit successor table. Cancellation branches off
// every non-terminal state; terminal states have no successors.
var transitions = map[Status][]Status{
	StatusPending:   {StatusAccepted, StatusCancelled},
	StatusAccepted:  {StatusPreparing, StatusCancelled},
	StatusPreparing: {StatusReady, StatusCancelled},
	StatusReady:     {StatusCompleted, StatusCancelled},
	StatusCompleted: {},
	StatusCancelled: {},
}

// requestable are the statuses a manager may ask for. An order can never
// be driven back to pending.
var requestable = map[Status]bool{
	StatusAccepted:  true,
	StatusPreparing: true,
	StatusReady:     true,
	StatusCompleted: true,
	StatusCancelled: true,
}

func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s Status) Requestable() bool {
	return requestable[s]
}

// Terminal reports whether no further fulfillment action is expected.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}
