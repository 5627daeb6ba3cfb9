package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE PERSON COMMAND
// Removes a roster record by exact name. Index resolution against the last
// rendered listing happens in the console layer; by the time the command
// reaches this handler the target is already a concrete name.
// ══════════════════════════════════════════════════════════════════════════════

// DeletePersonCommand identifies the record to remove.
type DeletePersonCommand struct {
	// Name is the exact name of the record to remove.
	Name string

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c DeletePersonCommand) Validate() error {
	if c.Name == "" {
		return errors.New("delete_person: name is required")
	}
	return nil
}

// DeletePersonResult contains the result of the removal.
type DeletePersonResult struct {
	// Removed is the record as it was before removal.
	Removed *person.Person

	// Total is the roster size after the removal.
	Total int
}

// DeletePersonHandler handles the DeletePersonCommand.
type DeletePersonHandler struct {
	personRepo     person.Repository
	eventPublisher shared.EventPublisher
}

// NewDeletePersonHandler creates a new DeletePersonHandler.
func NewDeletePersonHandler(
	personRepo person.Repository,
	eventPublisher shared.EventPublisher,
) *DeletePersonHandler {
	return &DeletePersonHandler{
		personRepo:     personRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the delete person command.
func (h *DeletePersonHandler) Handle(ctx context.Context, cmd DeletePersonCommand) (*DeletePersonResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("delete_person: validation failed: %w", err)
	}

	name, err := person.NewName(cmd.Name)
	if err != nil {
		return nil, err
	}

	removed, err := h.personRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("delete_person: failed to find person: %w", err)
	}

	if err := h.personRepo.Delete(ctx, name); err != nil {
		return nil, fmt.Errorf("delete_person: failed to delete person: %w", err)
	}

	total, err := h.personRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("delete_person: failed to count roster: %w", err)
	}

	event := shared.NewPersonDeletedEvent(removed.ID(), removed.Name().String())
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.eventPublisher.Publish(event)

	return &DeletePersonResult{Removed: removed, Total: total}, nil
}
