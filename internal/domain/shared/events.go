package shared

import (
	"time"

	"github.com/google/uuid"
)

// ══════════════════════════════════════════════════════════════════════════════
// EVENT TYPES
// ══════════════════════════════════════════════════════════════════════════════

// EventType identifies the kind of domain event.
type EventType string

const (
	// Person lifecycle events
	EventPersonAdded   EventType = "person.added"
	EventPersonEdited  EventType = "person.edited"
	EventPersonDeleted EventType = "person.deleted"

	// Roster-wide events
	EventRosterCleared EventType = "roster.cleared"
	EventRosterSorted  EventType = "roster.sorted"

	// Session lifecycle events
	EventSessionStarted EventType = "session.started"
	EventSessionEnded   EventType = "session.ended"
)

// String returns the string representation of the event type.
func (t EventType) String() string {
	return string(t)
}

// ══════════════════════════════════════════════════════════════════════════════
// EVENT INTERFACE
// ══════════════════════════════════════════════════════════════════════════════

// Event is the interface all domain events implement.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// EventID returns the unique identifier of this event instance.
	EventID() string

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate this event belongs to.
	AggregateID() string

	// Payload returns the event data as a map for serialization.
	Payload() map[string]interface{}
}

// ══════════════════════════════════════════════════════════════════════════════
// BASE EVENT
// ══════════════════════════════════════════════════════════════════════════════

// BaseEvent provides common event fields. Embed it in concrete events.
type BaseEvent struct {
	// Type is the event type.
	Type EventType

	// ID is the unique identifier of this event instance.
	ID string

	// Timestamp is when the event occurred.
	Timestamp time.Time

	// AggregateId is the ID of the aggregate root.
	AggregateId string

	// CorrelationID links events caused by the same user command.
	CorrelationID string
}

// NewBaseEvent creates a new base event with a fresh event ID.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
	}
}

// EventType returns the type of the event.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// EventID returns the unique identifier of this event instance.
func (e BaseEvent) EventID() string {
	return e.ID
}

// OccurredAt returns when the event occurred.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID returns the aggregate root ID.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// WithCorrelationID returns a copy of the base event with the correlation ID set.
func (e BaseEvent) WithCorrelationID(correlationID string) BaseEvent {
	e.CorrelationID = correlationID
	return e
}

// ══════════════════════════════════════════════════════════════════════════════
// PERSON EVENTS
// ══════════════════════════════════════════════════════════════════════════════

// PersonAddedEvent is published when a new person joins the roster.
type PersonAddedEvent struct {
	BaseEvent
	PersonName string
}

// NewPersonAddedEvent creates a PersonAddedEvent.
func NewPersonAddedEvent(personID, personName string) PersonAddedEvent {
	return PersonAddedEvent{
		BaseEvent:  NewBaseEvent(EventPersonAdded, personID),
		PersonName: personName,
	}
}

// Payload returns the event data for serialization.
func (e PersonAddedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"person_id":   e.AggregateId,
		"person_name": e.PersonName,
	}
}

// PersonEditedEvent is published when an existing person is rebuilt with
// new field values.
type PersonEditedEvent struct {
	BaseEvent
	PersonName    string
	PreviousName  string
	ChangedFields []string
}

// NewPersonEditedEvent creates a PersonEditedEvent.
func NewPersonEditedEvent(personID, personName, previousName string, changedFields []string) PersonEditedEvent {
	return PersonEditedEvent{
		BaseEvent:     NewBaseEvent(EventPersonEdited, personID),
		PersonName:    personName,
		PreviousName:  previousName,
		ChangedFields: changedFields,
	}
}

// Payload returns the event data for serialization.
func (e PersonEditedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"person_id":      e.AggregateId,
		"person_name":    e.PersonName,
		"previous_name":  e.PreviousName,
		"changed_fields": e.ChangedFields,
	}
}

// PersonDeletedEvent is published when a person is removed from the roster.
type PersonDeletedEvent struct {
	BaseEvent
	PersonName string
}

// NewPersonDeletedEvent creates a PersonDeletedEvent.
func NewPersonDeletedEvent(personID, personName string) PersonDeletedEvent {
	return PersonDeletedEvent{
		BaseEvent:  NewBaseEvent(EventPersonDeleted, personID),
		PersonName: personName,
	}
}

// Payload returns the event data for serialization.
func (e PersonDeletedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"person_id":   e.AggregateId,
		"person_name": e.PersonName,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// ROSTER EVENTS
// ══════════════════════════════════════════════════════════════════════════════

// RosterAggregateID is the aggregate ID used for roster-wide events.
const RosterAggregateID = "roster"

// RosterClearedEvent is published when the whole roster is emptied.
type RosterClearedEvent struct {
	BaseEvent
	RemovedCount int
}

// NewRosterClearedEvent creates a RosterClearedEvent.
func NewRosterClearedEvent(removedCount int) RosterClearedEvent {
	return RosterClearedEvent{
		BaseEvent:    NewBaseEvent(EventRosterCleared, RosterAggregateID),
		RemovedCount: removedCount,
	}
}

// Payload returns the event data for serialization.
func (e RosterClearedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"removed_count": e.RemovedCount,
	}
}

// RosterSortedEvent is published when the roster ordering is rewritten.
type RosterSortedEvent struct {
	BaseEvent
	Descending  bool
	PersonCount int
}

// NewRosterSortedEvent creates a RosterSortedEvent.
func NewRosterSortedEvent(descending bool, personCount int) RosterSortedEvent {
	return RosterSortedEvent{
		BaseEvent:   NewBaseEvent(EventRosterSorted, RosterAggregateID),
		Descending:  descending,
		PersonCount: personCount,
	}
}

// Payload returns the event data for serialization.
func (e RosterSortedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"descending":   e.Descending,
		"person_count": e.PersonCount,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// SESSION EVENTS
// ══════════════════════════════════════════════════════════════════════════════

// SessionStartedEvent is published when an interactive session begins.
type SessionStartedEvent struct {
	BaseEvent
	Backend string
}

// NewSessionStartedEvent creates a SessionStartedEvent.
func NewSessionStartedEvent(sessionID, backend string) SessionStartedEvent {
	return SessionStartedEvent{
		BaseEvent: NewBaseEvent(EventSessionStarted, sessionID),
		Backend:   backend,
	}
}

// Payload returns the event data for serialization.
func (e SessionStartedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id": e.AggregateId,
		"backend":    e.Backend,
	}
}

// SessionEndedEvent is published when an interactive session ends.
type SessionEndedEvent struct {
	BaseEvent
	CommandsRun int
}

// NewSessionEndedEvent creates a SessionEndedEvent.
func NewSessionEndedEvent(sessionID string, commandsRun int) SessionEndedEvent {
	return SessionEndedEvent{
		BaseEvent:   NewBaseEvent(EventSessionEnded, sessionID),
		CommandsRun: commandsRun,
	}
}

// Payload returns the event data for serialization.
func (e SessionEndedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"session_id":   e.AggregateId,
		"commands_run": e.CommandsRun,
	}
}

// ══════════════════════════════════════════════════════════════════════════════
// EVENT HANDLING CONTRACTS
// ══════════════════════════════════════════════════════════════════════════════

// EventHandler processes a single event. Returning an error marks the
// delivery as failed; the bus decides whether to log or retry.
type EventHandler func(Event) error

// EventPublisher publishes events to subscribers.
type EventPublisher interface {
	// Publish delivers the event to all matching subscribers.
	Publish(event Event) error
}

// EventSubscriber registers handlers for events.
type EventSubscriber interface {
	// Subscribe registers a handler for a specific event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler that receives every event.
	SubscribeAll(handler EventHandler) error
}

// EventBus combines publishing and subscribing with lifecycle management.
type EventBus interface {
	EventPublisher
	EventSubscriber

	// Close shuts the bus down and waits for in-flight handlers.
	Close() error
}
