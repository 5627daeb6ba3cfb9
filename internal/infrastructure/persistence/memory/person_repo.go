// Package memory implements the in-memory roster backend. It is the
// default: watson starts with an empty roster and keeps it for the
// lifetime of the process.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// PERSON REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// PersonRepository implements person.Repository backed by a slice.
// The slice order is the storage order every listing renders.
type PersonRepository struct {
	mu      sync.RWMutex
	persons []*person.Person
	byName  map[person.Name]int
}

// NewPersonRepository creates an empty in-memory repository.
func NewPersonRepository() *PersonRepository {
	return &PersonRepository{
		byName: make(map[person.Name]int),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// CRUD Operations
// ─────────────────────────────────────────────────────────────────────────────

// Create appends a new record to the end of the roster.
func (r *PersonRepository) Create(_ context.Context, p *person.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[p.Name()]; ok {
		return shared.ErrDuplicatePerson
	}

	r.persons = append(r.persons, p.Clone())
	r.byName[p.Name()] = len(r.persons) - 1
	return nil
}

// GetByName returns the record with the exact name.
func (r *PersonRepository) GetByName(_ context.Context, name person.Name) (*person.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.byName[name]
	if !ok {
		return nil, shared.ErrPersonNotFound
	}
	return r.persons[i].Clone(), nil
}

// Update replaces the record with the same ID, keeping its position.
func (r *PersonRepository) Update(_ context.Context, p *person.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.persons {
		if existing.ID() != p.ID() {
			continue
		}
		if j, ok := r.byName[p.Name()]; ok && j != i {
			return shared.ErrDuplicatePerson
		}
		r.persons[i] = p.Clone()
		r.rebuildIndex()
		return nil
	}
	return shared.ErrPersonNotFound
}

// Delete removes the record with the exact name.
func (r *PersonRepository) Delete(_ context.Context, name person.Name) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.byName[name]
	if !ok {
		return shared.ErrPersonNotFound
	}

	r.persons = append(r.persons[:i], r.persons[i+1:]...)
	r.rebuildIndex()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Bulk Operations
// ─────────────────────────────────────────────────────────────────────────────

// GetAll returns records in storage order.
func (r *PersonRepository) GetAll(_ context.Context, opts person.ListOptions) ([]*person.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if opts.Offset >= len(r.persons) {
		return []*person.Person{}, nil
	}

	end := len(r.persons)
	if opts.Limit > 0 && opts.Offset+opts.Limit < end {
		end = opts.Offset + opts.Limit
	}

	out := make([]*person.Person, 0, end-opts.Offset)
	for _, p := range r.persons[opts.Offset:end] {
		out = append(out, p.Clone())
	}
	return out, nil
}

// Count returns the roster size.
func (r *PersonRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.persons), nil
}

// Clear removes every record and returns how many were removed.
func (r *PersonRepository) Clear(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := len(r.persons)
	r.persons = nil
	r.byName = make(map[person.Name]int)
	return removed, nil
}

// SortByGrade durably reorders the roster by the sum of subject
// percentages. Records with equal totals keep their relative order.
func (r *PersonRepository) SortByGrade(_ context.Context, descending bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sort.SliceStable(r.persons, func(i, j int) bool {
		if descending {
			return r.persons[i].TotalGrade() > r.persons[j].TotalGrade()
		}
		return r.persons[i].TotalGrade() < r.persons[j].TotalGrade()
	})
	r.rebuildIndex()
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Search & Existence
// ─────────────────────────────────────────────────────────────────────────────

// Search returns records whose name contains at least one of the keywords
// as a whole word, case-insensitively, in storage order.
func (r *PersonRepository) Search(_ context.Context, keywords []string) ([]*person.Person, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}

	out := make([]*person.Person, 0)
	for _, p := range r.persons {
		if nameMatchesAny(p.Name(), lowered) {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

// Exists reports whether a record with the exact name is stored.
func (r *PersonRepository) Exists(_ context.Context, name person.Name) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byName[name]
	return ok, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Internals
// ─────────────────────────────────────────────────────────────────────────────

// rebuildIndex recomputes the name index. Callers must hold the write lock.
func (r *PersonRepository) rebuildIndex() {
	r.byName = make(map[person.Name]int, len(r.persons))
	for i, p := range r.persons {
		r.byName[p.Name()] = i
	}
}

// nameMatchesAny reports whether any whole word of the name equals one of
// the lowercased keywords.
func nameMatchesAny(name person.Name, lowered []string) bool {
	for _, word := range strings.Fields(strings.ToLower(name.String())) {
		for _, kw := range lowered {
			if word == kw {
				return true
			}
		}
	}
	return false
}
