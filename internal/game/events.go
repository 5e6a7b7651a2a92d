package game

import (
	"sync"
	"time"
)

// EventType represents a session event type
type EventType string

const (
	EventTypeStateChanged EventType = "state_changed"
	EventTypeNotice       EventType = "notice"
	EventTypeSettled      EventType = "settled"
	EventTypeOpponentMove EventType = "opponent_move"
	EventTypeUpdated      EventType = "updated"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is anything a Session publishes to its host.
type Event interface {
	EventType() EventType
	Timestamp() time.Time
	// Snapshot is the session as it stood right after the event
	Snapshot() Snapshot
}

type baseEvent struct {
	snapshot  Snapshot
	timestamp time.Time
}

func (e baseEvent) Timestamp() time.Time { return e.timestamp }
func (e baseEvent) Snapshot() Snapshot   { return e.snapshot }

// StateChangedEvent is published on every state machine transition
type StateChangedEvent struct {
	baseEvent
	From    State
	To      State
	Trigger Trigger
}

func (e StateChangedEvent) EventType() EventType { return EventTypeStateChanged }

// UpdatedEvent is published when the board changes without a transition,
// such as a revealed card or a toggled hold.
type UpdatedEvent struct {
	baseEvent
}

func (e UpdatedEvent) EventType() EventType { return EventTypeUpdated }

// NoticeEvent carries a message for the player
type NoticeEvent struct {
	baseEvent
	Notice Notice
}

func (e NoticeEvent) EventType() EventType { return EventTypeNotice }

// SettledEvent is published once per outcome when the ledger applies it
type SettledEvent struct {
	baseEvent
	Outcome    Outcome
	Settlement Settlement
}

func (e SettledEvent) EventType() EventType { return EventTypeSettled }

// OpponentMoveEvent is published after the House takes its Memory Match turn
type OpponentMoveEvent struct {
	baseEvent
	Found     bool
	Positions [2]int
}

func (e OpponentMoveEvent) EventType() EventType { return EventTypeOpponentMove }

// EventSubscriber can subscribe to session events
type EventSubscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to EventSubscriber
type SubscriberFunc func(Event)

// OnEvent calls f(event)
func (f SubscriberFunc) OnEvent(event Event) {
	f(event)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber) (unsubscribe func())
	Publish(event Event)
}

// SimpleEventBus is an in-memory event bus. Subscribers are called
// synchronously in subscription order.
type SimpleEventBus struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[int]EventSubscriber
	order       []int
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{subscribers: make(map[int]EventSubscriber)}
}

// Subscribe adds a subscriber and returns a function that removes it.
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) func() {
	bus.mu.Lock()
	defer bus.mu.Unlock()

	id := bus.nextID
	bus.nextID++
	bus.subscribers[id] = subscriber
	bus.order = append(bus.order, id)

	return func() {
		bus.mu.Lock()
		defer bus.mu.Unlock()
		if _, ok := bus.subscribers[id]; !ok {
			return
		}
		delete(bus.subscribers, id)
		for i, o := range bus.order {
			if o == id {
				bus.order = append(bus.order[:i], bus.order[i+1:]...)
				break
			}
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event Event) {
	bus.mu.Lock()
	subs := make([]EventSubscriber, 0, len(bus.order))
	for _, id := range bus.order {
		subs = append(subs, bus.subscribers[id])
	}
	bus.mu.Unlock()

	for _, s := range subs {
		s.OnEvent(event)
	}
}
