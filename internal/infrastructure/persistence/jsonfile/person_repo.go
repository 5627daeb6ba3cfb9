// Package jsonfile implements the file roster backend. The roster is
// held in memory and mirrored into a single JSON document that is
// rewritten atomically (temp file plus rename) after every mutation,
// so a crash never leaves a half-written file behind.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/infrastructure/persistence/memory"
	"github.com/alem-hub/watson/internal/infrastructure/persistence/record"
)

// ══════════════════════════════════════════════════════════════════════════════
// PERSON REPOSITORY IMPLEMENTATION
// ══════════════════════════════════════════════════════════════════════════════

// PersonRepository implements person.Repository on top of the in-memory
// backend, writing a full snapshot after every successful mutation.
// If a save fails the in-memory roster stays ahead of the file until
// the next mutation saves again.
type PersonRepository struct {
	mu   sync.Mutex
	path string
	mem  *memory.PersonRepository
}

// NewPersonRepository opens the roster file at path. A missing file
// starts an empty roster; an unreadable or invalid one is an error, so
// a later save cannot silently overwrite data the process failed to
// parse.
func NewPersonRepository(path string) (*PersonRepository, error) {
	repo := &PersonRepository{
		path: path,
		mem:  memory.NewPersonRepository(),
	}
	if err := repo.load(); err != nil {
		return nil, err
	}
	return repo, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Mutations (delegate, then snapshot)
// ─────────────────────────────────────────────────────────────────────────────

func (r *PersonRepository) Create(ctx context.Context, p *person.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.mem.Create(ctx, p); err != nil {
		return err
	}
	return r.save(ctx)
}

func (r *PersonRepository) Update(ctx context.Context, p *person.Person) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.mem.Update(ctx, p); err != nil {
		return err
	}
	return r.save(ctx)
}

func (r *PersonRepository) Delete(ctx context.Context, name person.Name) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.mem.Delete(ctx, name); err != nil {
		return err
	}
	return r.save(ctx)
}

func (r *PersonRepository) Clear(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed, err := r.mem.Clear(ctx)
	if err != nil {
		return 0, err
	}
	return removed, r.save(ctx)
}

func (r *PersonRepository) SortByGrade(ctx context.Context, descending bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.mem.SortByGrade(ctx, descending); err != nil {
		return err
	}
	return r.save(ctx)
}

// ─────────────────────────────────────────────────────────────────────────────
// Reads (straight delegation, no file I/O)
// ─────────────────────────────────────────────────────────────────────────────

func (r *PersonRepository) GetByName(ctx context.Context, name person.Name) (*person.Person, error) {
	return r.mem.GetByName(ctx, name)
}

func (r *PersonRepository) GetAll(ctx context.Context, opts person.ListOptions) ([]*person.Person, error) {
	return r.mem.GetAll(ctx, opts)
}

func (r *PersonRepository) Count(ctx context.Context) (int, error) {
	return r.mem.Count(ctx)
}

func (r *PersonRepository) Search(ctx context.Context, keywords []string) ([]*person.Person, error) {
	return r.mem.Search(ctx, keywords)
}

func (r *PersonRepository) Exists(ctx context.Context, name person.Name) (bool, error) {
	return r.mem.Exists(ctx, name)
}

// ─────────────────────────────────────────────────────────────────────────────
// Snapshot I/O
// ─────────────────────────────────────────────────────────────────────────────

func (r *PersonRepository) load() error {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("jsonfile: read %s: %w", r.path, err)
	}

	var doc rosterDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("jsonfile: parse %s: %w", r.path, err)
	}

	ctx := context.Background()
	for _, pd := range doc.Persons {
		p, err := pd.ToDomain()
		if err != nil {
			return fmt.Errorf("jsonfile: %s: %w", r.path, err)
		}
		if err := r.mem.Create(ctx, p); err != nil {
			return fmt.Errorf("jsonfile: %s: %w", r.path, err)
		}
	}
	return nil
}

func (r *PersonRepository) save(ctx context.Context) error {
	all, err := r.mem.GetAll(ctx, person.DefaultListOptions())
	if err != nil {
		return err
	}

	doc := rosterDocument{
		Version: documentVersion,
		SavedAt: time.Now().UTC(),
		Persons: make([]record.Person, 0, len(all)),
	}
	for _, p := range all {
		doc.Persons = append(doc.Persons, record.FromDomain(p))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("jsonfile: encode roster: %w", err)
	}
	return writeAtomic(r.path, data)
}

// writeAtomic writes data to a sibling temp file and renames it over
// path. Rename within one directory is atomic on POSIX filesystems, so
// the file on disk is always a complete document.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("jsonfile: create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".roster-*.json")
	if err != nil {
		return fmt.Errorf("jsonfile: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("jsonfile: write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("jsonfile: sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("jsonfile: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("jsonfile: replace %s: %w", path, err)
	}
	return nil
}
