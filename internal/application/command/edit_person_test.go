package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/domain/shared"
)

func strPtr(s string) *string { return &s }

func TestEditPersonHandler_ReplacesScalarField(t *testing.T) {
	repo := newRosterStub()
	bus := &recordingBus{}
	handler := NewEditPersonHandler(repo, bus)
	seedPerson(t, repo, "Alice Tan")

	result, err := handler.Handle(context.Background(), EditPersonCommand{
		Name:       "Alice Tan",
		Descriptor: EditPersonDescriptor{Phone: strPtr("88887777")},
	})

	assert.NoError(t, err)
	assert.Equal(t, person.Phone("91234567"), result.Before.Phone())
	assert.Equal(t, person.Phone("88887777"), result.After.Phone())
	assert.Equal(t, result.Before.ID(), result.After.ID())
	assert.Equal(t, []string{"phone"}, result.ChangedFields)
	assert.Equal(t, shared.EventPersonEdited, bus.lastType())

	stored, err := repo.GetByName(context.Background(), "Alice Tan")
	assert.NoError(t, err)
	assert.Equal(t, person.Phone("88887777"), stored.Phone())
}

func TestEditPersonHandler_Rename(t *testing.T) {
	repo := newRosterStub()
	handler := NewEditPersonHandler(repo, &recordingBus{})
	seedPerson(t, repo, "Alice Tan")

	result, err := handler.Handle(context.Background(), EditPersonCommand{
		Name:       "Alice Tan",
		Descriptor: EditPersonDescriptor{Name: strPtr("Alice Lim")},
	})
	assert.NoError(t, err)
	assert.Equal(t, person.Name("Alice Lim"), result.After.Name())

	_, err = repo.GetByName(context.Background(), "Alice Tan")
	assert.ErrorIs(t, err, shared.ErrPersonNotFound)
}

func TestEditPersonHandler_RenameOntoExistingNameRejected(t *testing.T) {
	repo := newRosterStub()
	handler := NewEditPersonHandler(repo, &recordingBus{})
	seedPerson(t, repo, "Alice Tan")
	seedPerson(t, repo, "Benson Meier")

	_, err := handler.Handle(context.Background(), EditPersonCommand{
		Name:       "Benson Meier",
		Descriptor: EditPersonDescriptor{Name: strPtr("Alice Tan")},
	})
	assert.ErrorIs(t, err, shared.ErrDuplicatePerson)
}

func TestEditPersonHandler_NoFieldsRejected(t *testing.T) {
	repo := newRosterStub()
	handler := NewEditPersonHandler(repo, &recordingBus{})
	seedPerson(t, repo, "Alice Tan")

	_, err := handler.Handle(context.Background(), EditPersonCommand{Name: "Alice Tan"})
	assert.ErrorIs(t, err, shared.ErrEditNoChanges)
}

func TestEditPersonHandler_IdenticalEditRejected(t *testing.T) {
	repo := newRosterStub()
	handler := NewEditPersonHandler(repo, &recordingBus{})
	seedPerson(t, repo, "Alice Tan")

	_, err := handler.Handle(context.Background(), EditPersonCommand{
		Name:       "Alice Tan",
		Descriptor: EditPersonDescriptor{Phone: strPtr("91234567")},
	})
	assert.ErrorIs(t, err, shared.ErrEditUnchanged)
}

func TestEditPersonHandler_UnknownPersonRejected(t *testing.T) {
	handler := NewEditPersonHandler(newRosterStub(), &recordingBus{})

	_, err := handler.Handle(context.Background(), EditPersonCommand{
		Name:       "Nobody Here",
		Descriptor: EditPersonDescriptor{Phone: strPtr("88887777")},
	})
	assert.ErrorIs(t, err, shared.ErrPersonNotFound)
}

func TestEditPersonHandler_EmptyTagsClearTagSet(t *testing.T) {
	repo := newRosterStub()
	handler := NewEditPersonHandler(repo, &recordingBus{})

	add := NewAddPersonHandler(repo, &recordingBus{})
	cmd := validAddCommand()
	cmd.Tags = []string{"friends", "owesMoney"}
	_, err := add.Handle(context.Background(), cmd)
	assert.NoError(t, err)

	result, err := handler.Handle(context.Background(), EditPersonCommand{
		Name:       "Alice Tan",
		Descriptor: EditPersonDescriptor{Tags: &[]string{}},
	})
	assert.NoError(t, err)
	assert.Empty(t, result.After.Tags())
}

func TestEditPersonHandler_AttendanceMergesPerSession(t *testing.T) {
	repo := newRosterStub()
	handler := NewEditPersonHandler(repo, &recordingBus{})
	seedPerson(t, repo, "Alice Tan")

	_, err := handler.Handle(context.Background(), EditPersonCommand{
		Name:       "Alice Tan",
		Descriptor: EditPersonDescriptor{Attendance: map[string]int{"m1": 1, "m2": 0}},
	})
	assert.NoError(t, err)

	result, err := handler.Handle(context.Background(), EditPersonCommand{
		Name:       "Alice Tan",
		Descriptor: EditPersonDescriptor{Attendance: map[string]int{"m2": 1, "m3": 1}},
	})
	assert.NoError(t, err)
	assert.Equal(t, "3/3", result.After.Attendance().String())
}

func TestEditPersonHandler_GradeUpsert(t *testing.T) {
	repo := newRosterStub()
	handler := NewEditPersonHandler(repo, &recordingBus{})
	seedPerson(t, repo, "Alice Tan", mustGrade(t, "Math", "exam", 50, 100))

	result, err := handler.Handle(context.Background(), EditPersonCommand{
		Name: "Alice Tan",
		Descriptor: EditPersonDescriptor{
			Grades: []SubjectGradeInput{{Subject: "Math", Component: "exam", Score: 80, Max: 100}},
		},
	})
	assert.NoError(t, err)
	assert.InDelta(t, 80.0, result.After.TotalGrade(), 1e-9)
	assert.Equal(t, 1, result.After.Subjects().Len())
}

func TestEditPersonHandler_InvalidFieldAbortsWholeEdit(t *testing.T) {
	repo := newRosterStub()
	handler := NewEditPersonHandler(repo, &recordingBus{})
	seedPerson(t, repo, "Alice Tan")

	_, err := handler.Handle(context.Background(), EditPersonCommand{
		Name: "Alice Tan",
		Descriptor: EditPersonDescriptor{
			Phone: strPtr("88887777"),
			Email: strPtr("not an email"),
		},
	})
	assert.ErrorIs(t, err, shared.ErrInvalidEmail)

	// nothing was persisted
	stored, err := repo.GetByName(context.Background(), "Alice Tan")
	assert.NoError(t, err)
	assert.Equal(t, person.Phone("91234567"), stored.Phone())
}
