package command

import (
	"context"
	"fmt"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CLEAR ROSTER COMMAND
// Removes every record from the roster.
// ══════════════════════════════════════════════════════════════════════════════

// ClearRosterCommand clears the roster. It carries no target: the whole
// roster is the target.
type ClearRosterCommand struct {
	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command. Clear never fails validation.
func (c ClearRosterCommand) Validate() error {
	return nil
}

// ClearRosterResult contains the result of clearing the roster.
type ClearRosterResult struct {
	// RemovedCount is the number of records that were removed.
	RemovedCount int
}

// ClearRosterHandler handles the ClearRosterCommand.
type ClearRosterHandler struct {
	personRepo     person.Repository
	eventPublisher shared.EventPublisher
}

// NewClearRosterHandler creates a new ClearRosterHandler.
func NewClearRosterHandler(
	personRepo person.Repository,
	eventPublisher shared.EventPublisher,
) *ClearRosterHandler {
	return &ClearRosterHandler{
		personRepo:     personRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the clear roster command.
func (h *ClearRosterHandler) Handle(ctx context.Context, cmd ClearRosterCommand) (*ClearRosterResult, error) {
	removed, err := h.personRepo.Clear(ctx)
	if err != nil {
		return nil, fmt.Errorf("clear_roster: failed to clear roster: %w", err)
	}

	event := shared.NewRosterClearedEvent(removed)
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.eventPublisher.Publish(event)

	return &ClearRosterResult{RemovedCount: removed}, nil
}
