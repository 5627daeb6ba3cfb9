// Package record defines the storage shape of roster records shared by
// the snapshot and cache backends. The shape is plain data with JSON
// tags; conversion back to the domain re-validates every field.
package record

import (
	"fmt"

	"github.com/alem-hub/watson/internal/domain/person"
)

// Person is the storage shape of one roster record.
type Person struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Phone      string         `json:"phone"`
	Email      string         `json:"email"`
	Address    string         `json:"address"`
	Class      string         `json:"class"`
	Tags       []string       `json:"tags,omitempty"`
	Attendance map[string]int `json:"attendance,omitempty"`
	Remarks    []string       `json:"remarks,omitempty"`
	Subjects   []Subject      `json:"subjects,omitempty"`
}

// Subject is the storage shape of one graded subject.
type Subject struct {
	Name       string      `json:"name"`
	Components []Component `json:"components"`
}

// Component is the storage shape of one grade inside a subject.
type Component struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
	Max   float64 `json:"max"`
}

// FromDomain converts a domain record into its storage shape.
func FromDomain(p *person.Person) Person {
	doc := Person{
		ID:      p.ID(),
		Name:    p.Name().String(),
		Phone:   p.Phone().String(),
		Email:   p.Email().String(),
		Address: p.Address().String(),
		Class:   p.Class().String(),
	}

	for _, tag := range p.Tags() {
		doc.Tags = append(doc.Tags, tag.String())
	}
	for _, remark := range p.Remarks() {
		doc.Remarks = append(doc.Remarks, remark.String())
	}

	sessions := p.Attendance().Sessions()
	if len(sessions) > 0 {
		doc.Attendance = make(map[string]int, len(sessions))
		for id, mark := range sessions {
			doc.Attendance[id.String()] = mark
		}
	}

	for _, subject := range p.Subjects().Subjects() {
		sd := Subject{Name: subject.Name().String()}
		for _, c := range subject.Components() {
			sd.Components = append(sd.Components, Component{
				Label: c.Label.String(),
				Score: c.Score,
				Max:   c.Max,
			})
		}
		doc.Subjects = append(doc.Subjects, sd)
	}

	return doc
}

// ToDomain rebuilds the domain record. Every field goes back through
// domain validation, so stored data cannot smuggle invalid values into
// the roster.
func (r Person) ToDomain() (*person.Person, error) {
	attendance, err := person.NewAttendanceFromMap(r.Attendance)
	if err != nil {
		return nil, fmt.Errorf("record %q: %w", r.Name, err)
	}

	tags := make([]person.Tag, 0, len(r.Tags))
	for _, raw := range r.Tags {
		tags = append(tags, person.Tag(raw))
	}

	remarks := make([]person.Remark, 0, len(r.Remarks))
	for _, raw := range r.Remarks {
		remarks = append(remarks, person.Remark(raw))
	}

	subjects := person.NewSubjectSet()
	for _, sd := range r.Subjects {
		for _, cd := range sd.Components {
			component, err := person.NewGradedComponent(cd.Label, cd.Score, cd.Max)
			if err != nil {
				return nil, fmt.Errorf("record %q, subject %q: %w", r.Name, sd.Name, err)
			}
			subjects = subjects.WithGrade(person.SubjectGrade{
				Subject:   person.SubjectName(sd.Name),
				Component: component,
			})
		}
	}

	p, err := person.NewPerson(person.NewPersonParams{
		ID:         r.ID,
		Name:       person.Name(r.Name),
		Phone:      person.Phone(r.Phone),
		Email:      person.Email(r.Email),
		Address:    person.Address(r.Address),
		Class:      person.StudentClass(r.Class),
		Tags:       tags,
		Attendance: attendance,
		Remarks:    remarks,
		Subjects:   subjects,
	})
	if err != nil {
		return nil, fmt.Errorf("record %q: %w", r.Name, err)
	}
	return p, nil
}
