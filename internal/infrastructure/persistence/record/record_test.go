package record

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/domain/shared"
)

func domainFixture(t *testing.T) *person.Person {
	t.Helper()

	attendance, err := person.NewAttendanceFromMap(map[string]int{"m1": 1, "m2": 0})
	require.NoError(t, err)

	exam, err := person.NewGradedComponent("exam", 45.5, 60)
	require.NoError(t, err)

	p, err := person.NewPerson(person.NewPersonParams{
		ID:         uuid.NewString(),
		Name:       "Alice Tan",
		Phone:      "91234567",
		Email:      "alice@example.com",
		Address:    "123, Jurong West Ave 6, #08-111",
		Class:      "4A",
		Tags:       []person.Tag{"friends", "owesMoney"},
		Attendance: attendance,
		Remarks:    []person.Remark{"Struggles with algebra"},
		Subjects: person.NewSubjectSet().WithGrade(person.SubjectGrade{
			Subject:   "Math",
			Component: exam,
		}),
	})
	require.NoError(t, err)
	return p
}

func TestRoundTrip(t *testing.T) {
	original := domainFixture(t)

	doc := FromDomain(original)
	assert.Equal(t, original.ID(), doc.ID)
	assert.Equal(t, "Alice Tan", doc.Name)
	assert.Equal(t, []string{"friends", "owesMoney"}, doc.Tags)

	rebuilt, err := doc.ToDomain()
	require.NoError(t, err)
	assert.True(t, rebuilt.Equals(original))
	assert.Equal(t, original.ID(), rebuilt.ID())
	assert.InDelta(t, original.TotalGrade(), rebuilt.TotalGrade(), 0.0001)
}

func TestToDomain_RevalidatesFields(t *testing.T) {
	doc := FromDomain(domainFixture(t))

	doc.Email = "not an email"
	_, err := doc.ToDomain()
	assert.ErrorIs(t, err, shared.ErrInvalidEmail)
}

func TestToDomain_RejectsBrokenComponent(t *testing.T) {
	doc := FromDomain(domainFixture(t))

	doc.Subjects[0].Components[0].Score = -1
	_, err := doc.ToDomain()
	assert.ErrorIs(t, err, shared.ErrInvalidComponent)
	assert.Contains(t, err.Error(), `subject "Math"`)
}

func TestEmptyCollectionsStayEmpty(t *testing.T) {
	p, err := person.NewPerson(person.NewPersonParams{
		ID:      uuid.NewString(),
		Name:    "Bob",
		Phone:   "911",
		Email:   "bob@example.com",
		Address: "Blk 30",
		Class:   "3B",
	})
	require.NoError(t, err)

	doc := FromDomain(p)
	assert.Empty(t, doc.Tags)
	assert.Empty(t, doc.Attendance)
	assert.Empty(t, doc.Subjects)

	rebuilt, err := doc.ToDomain()
	require.NoError(t, err)
	assert.True(t, rebuilt.Equals(p))
	assert.Equal(t, "0/0", rebuilt.Attendance().String())
}
