package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/domain/shared"
)

func rosterPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "roster.json")
}

func fullPerson(t *testing.T, name string) *person.Person {
	t.Helper()

	attendance, err := person.NewAttendanceFromMap(map[string]int{"m1": 1, "m2": 0})
	require.NoError(t, err)

	exam, err := person.NewGradedComponent("exam", 45.5, 60)
	require.NoError(t, err)
	quiz, err := person.NewGradedComponent("quiz", 8, 10)
	require.NoError(t, err)

	subjects := person.NewSubjectSet().
		WithGrade(person.SubjectGrade{Subject: "Math", Component: exam}).
		WithGrade(person.SubjectGrade{Subject: "Physics", Component: quiz})

	p, err := person.NewPerson(person.NewPersonParams{
		ID:         uuid.NewString(),
		Name:       person.Name(name),
		Phone:      "91234567",
		Email:      "roster@example.com",
		Address:    "123, Jurong West Ave 6, #08-111",
		Class:      "4A",
		Tags:       []person.Tag{"friends", "owesMoney"},
		Attendance: attendance,
		Remarks:    []person.Remark{"Struggles with algebra"},
		Subjects:   subjects,
	})
	require.NoError(t, err)
	return p
}

func TestPersonRepository_RoundTripsFullRecords(t *testing.T) {
	path := rosterPath(t)
	ctx := context.Background()

	repo, err := NewPersonRepository(path)
	require.NoError(t, err)

	alice := fullPerson(t, "Alice Tan")
	benson := fullPerson(t, "Benson Meier")
	require.NoError(t, repo.Create(ctx, alice))
	require.NoError(t, repo.Create(ctx, benson))

	reopened, err := NewPersonRepository(path)
	require.NoError(t, err)

	all, err := reopened.GetAll(ctx, person.DefaultListOptions())
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.True(t, all[0].Equals(alice))
	assert.True(t, all[1].Equals(benson))
	assert.Equal(t, alice.ID(), all[0].ID())
	assert.Equal(t, "1/2", all[0].Attendance().String())
	assert.InDelta(t, alice.TotalGrade(), all[0].TotalGrade(), 0.0001)
}

func TestPersonRepository_MissingFileStartsEmpty(t *testing.T) {
	path := rosterPath(t)
	ctx := context.Background()

	repo, err := NewPersonRepository(path)
	require.NoError(t, err)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Nothing is written until the first mutation.
	_, err = os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, repo.Create(ctx, fullPerson(t, "Alice Tan")))
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestPersonRepository_DeletePersists(t *testing.T) {
	path := rosterPath(t)
	ctx := context.Background()

	repo, err := NewPersonRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, fullPerson(t, "Alice Tan")))
	require.NoError(t, repo.Create(ctx, fullPerson(t, "Benson Meier")))
	require.NoError(t, repo.Delete(ctx, "Alice Tan"))

	reopened, err := NewPersonRepository(path)
	require.NoError(t, err)

	_, err = reopened.GetByName(ctx, "Alice Tan")
	assert.ErrorIs(t, err, shared.ErrPersonNotFound)

	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPersonRepository_SortOrderSurvivesReopen(t *testing.T) {
	path := rosterPath(t)
	ctx := context.Background()

	repo, err := NewPersonRepository(path)
	require.NoError(t, err)

	// fullPerson carries the same grades for everyone, so build
	// distinct totals by hand.
	low, err := person.NewPerson(person.NewPersonParams{
		ID:      uuid.NewString(),
		Name:    "Carl Kurz",
		Phone:   "95352563",
		Email:   "carl@example.com",
		Address: "Wall Street",
		Class:   "2C",
	})
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, fullPerson(t, "Alice Tan")))
	require.NoError(t, repo.Create(ctx, low))
	require.NoError(t, repo.SortByGrade(ctx, false))

	reopened, err := NewPersonRepository(path)
	require.NoError(t, err)

	all, err := reopened.GetAll(ctx, person.DefaultListOptions())
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Carl Kurz", all[0].Name().String())
	assert.Equal(t, "Alice Tan", all[1].Name().String())
}

func TestPersonRepository_ClearPersists(t *testing.T) {
	path := rosterPath(t)
	ctx := context.Background()

	repo, err := NewPersonRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, fullPerson(t, "Alice Tan")))

	removed, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	reopened, err := NewPersonRepository(path)
	require.NoError(t, err)

	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestNewPersonRepository_CorruptFile(t *testing.T) {
	path := rosterPath(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewPersonRepository(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestNewPersonRepository_InvalidStoredField(t *testing.T) {
	path := rosterPath(t)
	doc := `{
  "version": 1,
  "persons": [
    {
      "id": "7c9e6679-7425-40de-944b-e07fc1f90ae7",
      "name": "Alice Tan",
      "phone": "91",
      "email": "alice@example.com",
      "address": "Blk 30",
      "class": "4A"
    }
  ]
}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	_, err := NewPersonRepository(path)
	assert.ErrorIs(t, err, shared.ErrInvalidPhone)
}

func TestPersonRepository_SnapshotShape(t *testing.T) {
	path := rosterPath(t)
	ctx := context.Background()

	repo, err := NewPersonRepository(path)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, fullPerson(t, "Alice Tan")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `"version": 1`)
	assert.Contains(t, text, `"saved_at"`)
	assert.Contains(t, text, `"Alice Tan"`)
	assert.Contains(t, text, `"owesMoney"`)

	// No stray temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}
