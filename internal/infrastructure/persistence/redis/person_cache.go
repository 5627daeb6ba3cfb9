package redis

import (
	"context"
	"time"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/infrastructure/persistence/record"
)

// ══════════════════════════════════════════════════════════════════════════════
// PERSON CACHE
// ══════════════════════════════════════════════════════════════════════════════

// PersonCache implements person.Cache using the generic Redis Cache.
// Records are stored in their storage shape and re-validated on the
// way out, same as every other backend.
type PersonCache struct {
	cache *Cache
}

// NewPersonCache creates a new PersonCache.
func NewPersonCache(cache *Cache) *PersonCache {
	return &PersonCache{
		cache: cache,
	}
}

// Get gets a record from cache by name.
func (pc *PersonCache) Get(ctx context.Context, name person.Name) (*person.Person, error) {
	var doc record.Person
	if err := pc.cache.Get(ctx, PersonKey(name.String()), &doc); err != nil {
		return nil, err
	}
	return doc.ToDomain()
}

// Set stores a record in cache.
func (pc *PersonCache) Set(ctx context.Context, p *person.Person, ttl time.Duration) error {
	if p == nil {
		return nil
	}
	return pc.cache.Set(ctx, PersonKey(p.Name().String()), record.FromDomain(p), ttl)
}

// GetRoster gets the cached full listing, in storage order.
func (pc *PersonCache) GetRoster(ctx context.Context) ([]*person.Person, error) {
	var docs []record.Person
	if err := pc.cache.Get(ctx, KeyRoster, &docs); err != nil {
		return nil, err
	}

	persons := make([]*person.Person, 0, len(docs))
	for _, doc := range docs {
		p, err := doc.ToDomain()
		if err != nil {
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, nil
}

// SetRoster stores the full listing in cache.
func (pc *PersonCache) SetRoster(ctx context.Context, persons []*person.Person, ttl time.Duration) error {
	docs := make([]record.Person, 0, len(persons))
	for _, p := range persons {
		docs = append(docs, record.FromDomain(p))
	}
	return pc.cache.Set(ctx, KeyRoster, docs, ttl)
}

// Invalidate removes a single record from cache.
func (pc *PersonCache) Invalidate(ctx context.Context, name person.Name) error {
	return pc.cache.Delete(ctx, PersonKey(name.String()))
}

// InvalidateAll clears every watson key, records and roster alike.
func (pc *PersonCache) InvalidateAll(ctx context.Context) error {
	return pc.cache.DeleteByPattern(ctx, KeyPrefix+"*")
}
