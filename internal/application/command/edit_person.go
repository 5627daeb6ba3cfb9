package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// EDIT PERSON COMMAND
// Rebuilds a roster record from a sparse descriptor. The record itself is
// immutable: the handler merges the existing fields with the supplied ones
// and replaces the stored record with a fresh Person under the same ID.
// ══════════════════════════════════════════════════════════════════════════════

// SubjectGradeInput is one raw grade entry of an edit:
// SUBJECT:COMPONENT=SCORE/MAX.
type SubjectGradeInput struct {
	Subject   string
	Component string
	Score     float64
	Max       float64
}

// EditPersonDescriptor captures only the fields the user wants changed.
// A nil pointer means "leave untouched"; a present-but-empty collection
// means "clear".
type EditPersonDescriptor struct {
	// Name replaces the person's name.
	Name *string

	// Phone replaces the phone number.
	Phone *string

	// Email replaces the email address.
	Email *string

	// Address replaces the postal address.
	Address *string

	// Class replaces the student class.
	Class *string

	// Tags replaces the whole tag set. An empty slice clears all tags.
	Tags *[]string

	// Attendance is merged into the existing attendance: supplied sessions
	// overwrite their marks, absent sessions are retained.
	Attendance map[string]int

	// Remarks replaces the whole remark set. An empty slice clears it.
	Remarks *[]string

	// Grades are upserted into the subject set one by one.
	Grades []SubjectGradeInput
}

// IsZero reports whether the descriptor carries no fields at all.
func (d EditPersonDescriptor) IsZero() bool {
	return d.Name == nil &&
		d.Phone == nil &&
		d.Email == nil &&
		d.Address == nil &&
		d.Class == nil &&
		d.Tags == nil &&
		d.Attendance == nil &&
		d.Remarks == nil &&
		len(d.Grades) == 0
}

// ChangedFields returns the names of the supplied fields, for the event trail.
func (d EditPersonDescriptor) ChangedFields() []string {
	fields := make([]string, 0, 9)
	if d.Name != nil {
		fields = append(fields, "name")
	}
	if d.Phone != nil {
		fields = append(fields, "phone")
	}
	if d.Email != nil {
		fields = append(fields, "email")
	}
	if d.Address != nil {
		fields = append(fields, "address")
	}
	if d.Class != nil {
		fields = append(fields, "class")
	}
	if d.Tags != nil {
		fields = append(fields, "tags")
	}
	if d.Attendance != nil {
		fields = append(fields, "attendance")
	}
	if d.Remarks != nil {
		fields = append(fields, "remarks")
	}
	if len(d.Grades) > 0 {
		fields = append(fields, "subjects")
	}
	return fields
}

// EditPersonCommand identifies the record and carries the descriptor.
type EditPersonCommand struct {
	// Name is the exact name of the record to edit.
	Name string

	// Descriptor holds the fields to change.
	Descriptor EditPersonDescriptor

	// CorrelationID for tracing.
	CorrelationID string
}

// Validate validates the command.
func (c EditPersonCommand) Validate() error {
	if c.Name == "" {
		return errors.New("edit_person: name is required")
	}
	if c.Descriptor.IsZero() {
		return shared.ErrEditNoChanges
	}
	return nil
}

// EditPersonResult contains the record before and after the edit.
type EditPersonResult struct {
	// Before is the record as it was stored.
	Before *person.Person

	// After is the rebuilt record.
	After *person.Person

	// ChangedFields lists the fields the descriptor touched.
	ChangedFields []string
}

// EditPersonHandler handles the EditPersonCommand.
type EditPersonHandler struct {
	personRepo     person.Repository
	eventPublisher shared.EventPublisher
}

// NewEditPersonHandler creates a new EditPersonHandler.
func NewEditPersonHandler(
	personRepo person.Repository,
	eventPublisher shared.EventPublisher,
) *EditPersonHandler {
	return &EditPersonHandler{
		personRepo:     personRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the edit person command.
func (h *EditPersonHandler) Handle(ctx context.Context, cmd EditPersonCommand) (*EditPersonResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("edit_person: validation failed: %w", err)
	}

	target, err := person.NewName(cmd.Name)
	if err != nil {
		return nil, err
	}

	existing, err := h.personRepo.GetByName(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("edit_person: failed to find person: %w", err)
	}

	rebuilt, err := h.rebuild(existing, cmd.Descriptor)
	if err != nil {
		return nil, err
	}

	// Renaming onto another record's name is rejected. Keeping one's own
	// name is not a rename.
	if rebuilt.Name() != existing.Name() {
		taken, err := h.personRepo.Exists(ctx, rebuilt.Name())
		if err != nil {
			return nil, fmt.Errorf("edit_person: failed to check uniqueness: %w", err)
		}
		if taken {
			return nil, shared.ErrDuplicatePerson
		}
	}

	if existing.Equals(rebuilt) {
		return nil, shared.ErrEditUnchanged
	}

	if err := h.personRepo.Update(ctx, rebuilt); err != nil {
		return nil, fmt.Errorf("edit_person: failed to save person: %w", err)
	}

	changed := cmd.Descriptor.ChangedFields()
	event := shared.NewPersonEditedEvent(
		rebuilt.ID(),
		rebuilt.Name().String(),
		existing.Name().String(),
		changed,
	)
	if cmd.CorrelationID != "" {
		event.BaseEvent = event.BaseEvent.WithCorrelationID(cmd.CorrelationID)
	}
	_ = h.eventPublisher.Publish(event)

	return &EditPersonResult{Before: existing, After: rebuilt, ChangedFields: changed}, nil
}

// rebuild merges the existing record with the descriptor and constructs a
// fresh Person under the same ID. The first invalid field aborts the edit.
func (h *EditPersonHandler) rebuild(existing *person.Person, d EditPersonDescriptor) (*person.Person, error) {
	params := person.NewPersonParams{
		ID:         existing.ID(),
		Name:       existing.Name(),
		Phone:      existing.Phone(),
		Email:      existing.Email(),
		Address:    existing.Address(),
		Class:      existing.Class(),
		Tags:       existing.Tags(),
		Attendance: existing.Attendance(),
		Remarks:    existing.Remarks(),
		Subjects:   existing.Subjects(),
	}

	var err error
	if d.Name != nil {
		if params.Name, err = person.NewName(*d.Name); err != nil {
			return nil, err
		}
	}
	if d.Phone != nil {
		if params.Phone, err = person.NewPhone(*d.Phone); err != nil {
			return nil, err
		}
	}
	if d.Email != nil {
		if params.Email, err = person.NewEmail(*d.Email); err != nil {
			return nil, err
		}
	}
	if d.Address != nil {
		if params.Address, err = person.NewAddress(*d.Address); err != nil {
			return nil, err
		}
	}
	if d.Class != nil {
		if params.Class, err = person.NewStudentClass(*d.Class); err != nil {
			return nil, err
		}
	}
	if d.Tags != nil {
		if params.Tags, err = person.NewTagSet(*d.Tags); err != nil {
			return nil, err
		}
	}
	if d.Attendance != nil {
		patch, err := person.NewAttendanceFromMap(d.Attendance)
		if err != nil {
			return nil, err
		}
		params.Attendance = params.Attendance.Merge(patch)
	}
	if d.Remarks != nil {
		if params.Remarks, err = person.NewRemarkSet(*d.Remarks); err != nil {
			return nil, err
		}
	}
	for _, g := range d.Grades {
		subjectName, err := person.NewSubjectName(g.Subject)
		if err != nil {
			return nil, err
		}
		component, err := person.NewGradedComponent(g.Component, g.Score, g.Max)
		if err != nil {
			return nil, err
		}
		params.Subjects = params.Subjects.WithGrade(person.SubjectGrade{
			Subject:   subjectName,
			Component: component,
		})
	}

	return person.NewPerson(params)
}
