package command

import (
	"context"
	"fmt"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// SORT ROSTER COMMAND
// Durably reorders the roster by the sum of subject percentages. The new
// order is written back to storage, so every later listing sees it.
// ══════════════════════════════════════════════════════════════════════════════

// SortRosterCommand selects the sort direction.
type SortRosterCommand struct {
	// Descending sorts highest total first; the default is ascending.
	Descending bool

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command. Sort direction is already a boolean here;
// token parsing happens in the console layer.
func (c SortRosterCommand) Validate() error {
	return nil
}

// SortRosterResult contains the reordered roster.
type SortRosterResult struct {
	// Persons is the roster in its new storage order.
	Persons []*person.Person
}

// SortRosterHandler handles the SortRosterCommand.
type SortRosterHandler struct {
	personRepo     person.Repository
	eventPublisher shared.EventPublisher
}

// NewSortRosterHandler creates a new SortRosterHandler.
func NewSortRosterHandler(
	personRepo person.Repository,
	eventPublisher shared.EventPublisher,
) *SortRosterHandler {
	return &SortRosterHandler{
		personRepo:     personRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the sort roster command.
func (h *SortRosterHandler) Handle(ctx context.Context, cmd SortRosterCommand) (*SortRosterResult, error) {
	if err := h.personRepo.SortByGrade(ctx, cmd.Descending); err != nil {
		return nil, fmt.Errorf("sort_roster: failed to sort roster: %w", err)
	}

	persons, err := h.personRepo.GetAll(ctx, person.DefaultListOptions())
	if err != nil {
		return nil, fmt.Errorf("sort_roster: failed to read roster: %w", err)
	}

	event := shared.NewRosterSortedEvent(cmd.Descending, len(persons))
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.eventPublisher.Publish(event)

	return &SortRosterResult{Persons: persons}, nil
}
