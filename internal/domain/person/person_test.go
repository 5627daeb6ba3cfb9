package person

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alem-hub/watson/internal/domain/shared"
)

func validPersonParams() NewPersonParams {
	return NewPersonParams{
		ID:      "11111111-1111-1111-1111-111111111111",
		Name:    "Alice Tan",
		Phone:   "91234567",
		Email:   "alice@example.com",
		Address: "123, Jurong West Ave 6, #08-111",
		Class:   "4A",
		Tags:    []Tag{"friends"},
	}
}

func TestNewPerson(t *testing.T) {
	p, err := NewPerson(validPersonParams())
	assert.NoError(t, err)
	assert.Equal(t, Name("Alice Tan"), p.Name())
	assert.Equal(t, Phone("91234567"), p.Phone())
	assert.Equal(t, []Tag{"friends"}, p.Tags())
	assert.Equal(t, 0.0, p.TotalGrade())
}

func TestNewPerson_RequiresID(t *testing.T) {
	params := validPersonParams()
	params.ID = "  "
	_, err := NewPerson(params)
	assert.ErrorIs(t, err, shared.ErrInvalidID)
}

func TestNewPerson_RejectsInvalidFields(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*NewPersonParams)
		wantErr error
	}{
		{"blank name", func(p *NewPersonParams) { p.Name = "" }, shared.ErrInvalidName},
		{"short phone", func(p *NewPersonParams) { p.Phone = "91" }, shared.ErrInvalidPhone},
		{"bad email", func(p *NewPersonParams) { p.Email = "alice" }, shared.ErrInvalidEmail},
		{"blank address", func(p *NewPersonParams) { p.Address = " " }, shared.ErrInvalidAddress},
		{"blank class", func(p *NewPersonParams) { p.Class = "" }, shared.ErrInvalidClass},
		{"bad tag", func(p *NewPersonParams) { p.Tags = []Tag{"owes money"} }, shared.ErrInvalidTag},
		{"blank remark", func(p *NewPersonParams) { p.Remarks = []Remark{""} }, shared.ErrInvalidRemark},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validPersonParams()
			tc.mutate(&params)
			_, err := NewPerson(params)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNewPerson_CollapsesDuplicateTagsAndRemarks(t *testing.T) {
	params := validPersonParams()
	params.Tags = []Tag{"friends", "owesMoney", "friends"}
	params.Remarks = []Remark{"Needs help", "Needs help"}

	p, err := NewPerson(params)
	assert.NoError(t, err)
	assert.Equal(t, []Tag{"friends", "owesMoney"}, p.Tags())
	assert.Equal(t, []Remark{"Needs help"}, p.Remarks())
}

func TestPerson_IsSamePerson(t *testing.T) {
	alice, _ := NewPerson(validPersonParams())

	otherParams := validPersonParams()
	otherParams.ID = "22222222-2222-2222-2222-222222222222"
	otherParams.Phone = "99999999"
	sameName, _ := NewPerson(otherParams)

	renamed := validPersonParams()
	renamed.Name = "ALICE TAN"
	differentCase, _ := NewPerson(renamed)

	assert.True(t, alice.IsSamePerson(alice))
	assert.True(t, alice.IsSamePerson(sameName))
	assert.False(t, alice.IsSamePerson(differentCase))
	assert.False(t, alice.IsSamePerson(nil))
}

func TestPerson_Equals(t *testing.T) {
	params := validPersonParams()
	params.Tags = []Tag{"friends", "owesMoney"}
	a, _ := NewPerson(params)

	// ID does not participate, tag order does not matter
	mirrored := params
	mirrored.ID = "22222222-2222-2222-2222-222222222222"
	mirrored.Tags = []Tag{"owesMoney", "friends"}
	b, _ := NewPerson(mirrored)

	changed := params
	changed.Phone = "99999999"
	c, _ := NewPerson(changed)

	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(c))
	assert.False(t, a.Equals(nil))
}

func TestPerson_Compare(t *testing.T) {
	exam, _ := NewGradedComponent("exam", 5, 10)

	empty, _ := NewPerson(validPersonParams())

	gradedParams := validPersonParams()
	gradedParams.Name = "Benson Meier"
	gradedParams.Subjects = NewSubjectSet().WithGrade(SubjectGrade{Subject: "Math", Component: exam})
	graded, _ := NewPerson(gradedParams)

	assert.Equal(t, -1, empty.Compare(graded))
	assert.Equal(t, 1, graded.Compare(empty))
	assert.Equal(t, 0, empty.Compare(empty))
	assert.Equal(t, 1, empty.Compare(nil))
}

func TestPerson_String(t *testing.T) {
	exam, _ := NewGradedComponent("exam", 151, 200)
	attendance, _ := NewAttendanceFromMap(map[string]int{"m1": 1, "m2": 0, "m3": 1})

	params := validPersonParams()
	params.Tags = []Tag{"owesMoney", "friends"}
	params.Attendance = attendance
	params.Remarks = []Remark{"Struggles with algebra"}
	params.Subjects = NewSubjectSet().WithGrade(SubjectGrade{Subject: "Math", Component: exam})
	p, _ := NewPerson(params)

	want := "Alice Tan; Phone: 91234567; Email: alice@example.com; " +
		"Address: 123, Jurong West Ave 6, #08-111; Class: 4A; Attendance: 2/3; " +
		"Remarks: Struggles with algebra; Subjects: Math: 75.5%; Tags: [friends][owesMoney]"
	assert.Equal(t, want, p.String())
}

func TestPerson_StringEmptyCollections(t *testing.T) {
	p, _ := NewPerson(NewPersonParams{
		ID:      "11111111-1111-1111-1111-111111111111",
		Name:    "Bob",
		Phone:   "911",
		Email:   "bob@example.com",
		Address: "Blk 30",
		Class:   "3B",
	})

	want := "Bob; Phone: 911; Email: bob@example.com; Address: Blk 30; " +
		"Class: 3B; Attendance: 0/0; Remarks: ; Subjects: ; Tags: "
	assert.Equal(t, want, p.String())
}

func TestPerson_AccessorsReturnCopies(t *testing.T) {
	params := validPersonParams()
	params.Tags = []Tag{"friends"}
	p, _ := NewPerson(params)

	p.Tags()[0] = "enemies"
	assert.Equal(t, []Tag{"friends"}, p.Tags())
}

func TestPerson_Clone(t *testing.T) {
	params := validPersonParams()
	params.Remarks = []Remark{"Quiet in class"}
	p, _ := NewPerson(params)

	clone := p.Clone()
	assert.True(t, p.Equals(clone))
	assert.Equal(t, p.ID(), clone.ID())

	clone.remarks[0] = "Loud in class"
	assert.Equal(t, []Remark{"Quiet in class"}, p.Remarks())

	var nobody *Person
	assert.Nil(t, nobody.Clone())
}
