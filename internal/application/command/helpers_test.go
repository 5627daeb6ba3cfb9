package command

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/domain/shared"
)

// rosterStub is a minimal in-memory person.Repository for handler tests.
type rosterStub struct {
	persons []*person.Person
}

func newRosterStub() *rosterStub {
	return &rosterStub{}
}

func (s *rosterStub) Create(_ context.Context, p *person.Person) error {
	for _, existing := range s.persons {
		if existing.IsSamePerson(p) {
			return shared.ErrDuplicatePerson
		}
	}
	s.persons = append(s.persons, p.Clone())
	return nil
}

func (s *rosterStub) GetByName(_ context.Context, name person.Name) (*person.Person, error) {
	for _, p := range s.persons {
		if p.Name() == name {
			return p.Clone(), nil
		}
	}
	return nil, shared.ErrPersonNotFound
}

func (s *rosterStub) Update(_ context.Context, p *person.Person) error {
	for i, existing := range s.persons {
		if existing.ID() == p.ID() {
			for j, other := range s.persons {
				if j != i && other.IsSamePerson(p) {
					return shared.ErrDuplicatePerson
				}
			}
			s.persons[i] = p.Clone()
			return nil
		}
	}
	return shared.ErrPersonNotFound
}

func (s *rosterStub) Delete(_ context.Context, name person.Name) error {
	for i, p := range s.persons {
		if p.Name() == name {
			s.persons = append(s.persons[:i], s.persons[i+1:]...)
			return nil
		}
	}
	return shared.ErrPersonNotFound
}

func (s *rosterStub) GetAll(_ context.Context, _ person.ListOptions) ([]*person.Person, error) {
	out := make([]*person.Person, len(s.persons))
	for i, p := range s.persons {
		out[i] = p.Clone()
	}
	return out, nil
}

func (s *rosterStub) Count(_ context.Context) (int, error) {
	return len(s.persons), nil
}

func (s *rosterStub) Clear(_ context.Context) (int, error) {
	removed := len(s.persons)
	s.persons = nil
	return removed, nil
}

func (s *rosterStub) SortByGrade(_ context.Context, descending bool) error {
	sort.SliceStable(s.persons, func(i, j int) bool {
		if descending {
			return s.persons[i].TotalGrade() > s.persons[j].TotalGrade()
		}
		return s.persons[i].TotalGrade() < s.persons[j].TotalGrade()
	})
	return nil
}

func (s *rosterStub) Search(_ context.Context, keywords []string) ([]*person.Person, error) {
	var out []*person.Person
	for _, p := range s.persons {
		words := strings.Fields(strings.ToLower(p.Name().String()))
		for _, kw := range keywords {
			if matched := containsWord(words, strings.ToLower(kw)); matched {
				out = append(out, p.Clone())
				break
			}
		}
	}
	return out, nil
}

func containsWord(words []string, kw string) bool {
	for _, w := range words {
		if w == kw {
			return true
		}
	}
	return false
}

func (s *rosterStub) Exists(_ context.Context, name person.Name) (bool, error) {
	for _, p := range s.persons {
		if p.Name() == name {
			return true, nil
		}
	}
	return false, nil
}

// recordingBus captures published events.
type recordingBus struct {
	events []shared.Event
}

func (b *recordingBus) Publish(event shared.Event) error {
	b.events = append(b.events, event)
	return nil
}

func (b *recordingBus) lastType() shared.EventType {
	if len(b.events) == 0 {
		return ""
	}
	return b.events[len(b.events)-1].EventType()
}

// seedPerson stores a ready-made record directly in the stub.
func seedPerson(t *testing.T, repo *rosterStub, name string, grades ...person.SubjectGrade) *person.Person {
	t.Helper()

	subjects := person.NewSubjectSet()
	for _, g := range grades {
		subjects = subjects.WithGrade(g)
	}

	p, err := person.NewPerson(person.NewPersonParams{
		ID:       uuid.NewString(),
		Name:     person.Name(name),
		Phone:    "91234567",
		Email:    "seed@example.com",
		Address:  "Blk 30 Geylang Street 29",
		Class:    "4A",
		Subjects: subjects,
	})
	assert.NoError(t, err)
	assert.NoError(t, repo.Create(context.Background(), p))
	return p
}

func mustGrade(t *testing.T, subject, component string, score, max float64) person.SubjectGrade {
	t.Helper()
	c, err := person.NewGradedComponent(component, score, max)
	assert.NoError(t, err)
	return person.SubjectGrade{Subject: person.SubjectName(subject), Component: c}
}
