// Package command contains write operations (CQRS - Commands).
// Commands are responsible for changing the state of the roster.
// Each handler validates its input, rebuilds the affected Person
// through the domain factories and publishes the resulting events.
package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD PERSON COMMAND
// Creates a new roster record from raw field values. All mandatory fields
// must already be present; value validation happens here, fail-fast, so a
// Person is never partially constructed.
// ══════════════════════════════════════════════════════════════════════════════

// AddPersonCommand contains the raw field values of the record to create.
type AddPersonCommand struct {
	// Name is the person's full name, the roster identity.
	Name string

	// Phone is the contact phone number.
	Phone string

	// Email is the contact email address.
	Email string

	// Address is the postal address.
	Address string

	// Class is the student class label.
	Class string

	// Tags are optional labels; duplicates are collapsed.
	Tags []string

	// CorrelationID for tracing a command through the event trail.
	CorrelationID string
}

// Validate validates the command.
func (c AddPersonCommand) Validate() error {
	if c.Name == "" {
		return errors.New("add_person: name is required")
	}
	if c.Phone == "" {
		return errors.New("add_person: phone is required")
	}
	if c.Email == "" {
		return errors.New("add_person: email is required")
	}
	if c.Address == "" {
		return errors.New("add_person: address is required")
	}
	if c.Class == "" {
		return errors.New("add_person: class is required")
	}
	return nil
}

// AddPersonResult contains the result of adding a person.
type AddPersonResult struct {
	// Person is the newly created record.
	Person *person.Person

	// Total is the roster size after the addition.
	Total int
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// AddPersonHandler handles the AddPersonCommand.
type AddPersonHandler struct {
	personRepo     person.Repository
	eventPublisher shared.EventPublisher
}

// NewAddPersonHandler creates a new AddPersonHandler.
func NewAddPersonHandler(
	personRepo person.Repository,
	eventPublisher shared.EventPublisher,
) *AddPersonHandler {
	return &AddPersonHandler{
		personRepo:     personRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the add person command.
func (h *AddPersonHandler) Handle(ctx context.Context, cmd AddPersonCommand) (*AddPersonResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("add_person: validation failed: %w", err)
	}

	p, err := h.buildPerson(cmd)
	if err != nil {
		return nil, err
	}

	// Uniqueness is checked by exact name before touching storage.
	exists, err := h.personRepo.Exists(ctx, p.Name())
	if err != nil {
		return nil, fmt.Errorf("add_person: failed to check uniqueness: %w", err)
	}
	if exists {
		return nil, shared.ErrDuplicatePerson
	}

	if err := h.personRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("add_person: failed to save person: %w", err)
	}

	total, err := h.personRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("add_person: failed to count roster: %w", err)
	}

	event := shared.NewPersonAddedEvent(p.ID(), p.Name().String())
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	// Publish errors do not fail the command; the record is already saved.
	_ = h.eventPublisher.Publish(event)

	return &AddPersonResult{Person: p, Total: total}, nil
}

// buildPerson converts the raw command values into a validated Person.
// The first invalid field aborts the whole construction.
func (h *AddPersonHandler) buildPerson(cmd AddPersonCommand) (*person.Person, error) {
	name, err := person.NewName(cmd.Name)
	if err != nil {
		return nil, err
	}
	phone, err := person.NewPhone(cmd.Phone)
	if err != nil {
		return nil, err
	}
	email, err := person.NewEmail(cmd.Email)
	if err != nil {
		return nil, err
	}
	address, err := person.NewAddress(cmd.Address)
	if err != nil {
		return nil, err
	}
	class, err := person.NewStudentClass(cmd.Class)
	if err != nil {
		return nil, err
	}
	tags, err := person.NewTagSet(cmd.Tags)
	if err != nil {
		return nil, err
	}

	return person.NewPerson(person.NewPersonParams{
		ID:      uuid.NewString(),
		Name:    name,
		Phone:   phone,
		Email:   email,
		Address: address,
		Class:   class,
		Tags:    tags,
	})
}
