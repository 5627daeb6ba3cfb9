package command

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/domain/shared"
)

func TestSortRosterHandler_Ascending(t *testing.T) {
	repo := newRosterStub()
	bus := &recordingBus{}
	handler := NewSortRosterHandler(repo, bus)
	// totals: Carl 0.0, Alice 100.0, Benson 150.0
	seedPerson(t, repo, "Benson Meier",
		mustGrade(t, "Math", "exam", 100, 100),
		mustGrade(t, "Physics", "exam", 50, 100))
	seedPerson(t, repo, "Alice Tan", mustGrade(t, "Math", "exam", 100, 100))
	seedPerson(t, repo, "Carl Kurz")

	result, err := handler.Handle(context.Background(), SortRosterCommand{})

	assert.NoError(t, err)
	names := make([]person.Name, len(result.Persons))
	for i, p := range result.Persons {
		names[i] = p.Name()
	}
	assert.Equal(t, []person.Name{"Carl Kurz", "Alice Tan", "Benson Meier"}, names)
	assert.Equal(t, shared.EventRosterSorted, bus.lastType())
}

func TestSortRosterHandler_Descending(t *testing.T) {
	repo := newRosterStub()
	handler := NewSortRosterHandler(repo, &recordingBus{})
	seedPerson(t, repo, "Alice Tan", mustGrade(t, "Math", "exam", 100, 100))
	seedPerson(t, repo, "Benson Meier",
		mustGrade(t, "Math", "exam", 100, 100),
		mustGrade(t, "Physics", "exam", 50, 100))

	result, err := handler.Handle(context.Background(), SortRosterCommand{Descending: true})

	assert.NoError(t, err)
	assert.Equal(t, person.Name("Benson Meier"), result.Persons[0].Name())
}

func TestSortRosterHandler_OrderIsDurable(t *testing.T) {
	repo := newRosterStub()
	handler := NewSortRosterHandler(repo, &recordingBus{})
	seedPerson(t, repo, "Benson Meier", mustGrade(t, "Math", "exam", 90, 100))
	seedPerson(t, repo, "Alice Tan", mustGrade(t, "Math", "exam", 40, 100))

	_, err := handler.Handle(context.Background(), SortRosterCommand{})
	assert.NoError(t, err)

	// a later plain read sees the sorted order
	persons, err := repo.GetAll(context.Background(), person.DefaultListOptions())
	assert.NoError(t, err)
	assert.Equal(t, person.Name("Alice Tan"), persons[0].Name())
}
