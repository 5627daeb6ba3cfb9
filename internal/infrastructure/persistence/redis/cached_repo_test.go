package redis

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/internal/infrastructure/persistence/memory"
	"github.com/alem-hub/watson/pkg/logger"
)

// fakeCache implements person.Cache in memory. With failing set, every
// operation errors, standing in for a dead Redis.
type fakeCache struct {
	persons   map[person.Name]*person.Person
	roster    []*person.Person
	hasRoster bool
	calls     int
	failing   bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{persons: make(map[person.Name]*person.Person)}
}

var errCacheDown = errors.New("cache: connection refused")

func (f *fakeCache) Get(_ context.Context, name person.Name) (*person.Person, error) {
	f.calls++
	if f.failing {
		return nil, errCacheDown
	}
	p, ok := f.persons[name]
	if !ok {
		return nil, ErrCacheMiss
	}
	return p, nil
}

func (f *fakeCache) Set(_ context.Context, p *person.Person, _ time.Duration) error {
	f.calls++
	if f.failing {
		return errCacheDown
	}
	f.persons[p.Name()] = p
	return nil
}

func (f *fakeCache) GetRoster(_ context.Context) ([]*person.Person, error) {
	f.calls++
	if f.failing {
		return nil, errCacheDown
	}
	if !f.hasRoster {
		return nil, ErrCacheMiss
	}
	return f.roster, nil
}

func (f *fakeCache) SetRoster(_ context.Context, persons []*person.Person, _ time.Duration) error {
	f.calls++
	if f.failing {
		return errCacheDown
	}
	f.roster = persons
	f.hasRoster = true
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, name person.Name) error {
	f.calls++
	if f.failing {
		return errCacheDown
	}
	delete(f.persons, name)
	return nil
}

func (f *fakeCache) InvalidateAll(_ context.Context) error {
	f.calls++
	if f.failing {
		return errCacheDown
	}
	f.persons = make(map[person.Name]*person.Person)
	f.roster = nil
	f.hasRoster = false
	return nil
}

// countingRepo counts storage reads behind the cache.
type countingRepo struct {
	person.Repository
	getByName int
	getAll    int
}

func (c *countingRepo) GetByName(ctx context.Context, name person.Name) (*person.Person, error) {
	c.getByName++
	return c.Repository.GetByName(ctx, name)
}

func (c *countingRepo) GetAll(ctx context.Context, opts person.ListOptions) ([]*person.Person, error) {
	c.getAll++
	return c.Repository.GetAll(ctx, opts)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{Output: io.Discard, Level: logger.LevelError, AddCaller: false})
}

func newCachedFixture(t *testing.T) (*CachedRepository, *countingRepo, *fakeCache) {
	t.Helper()
	repo := &countingRepo{Repository: memory.NewPersonRepository()}
	cache := newFakeCache()
	return NewCachedRepository(repo, cache, testLogger()), repo, cache
}

func makePerson(t *testing.T, name string) *person.Person {
	t.Helper()
	p, err := person.NewPerson(person.NewPersonParams{
		ID:      uuid.NewString(),
		Name:    person.Name(name),
		Phone:   "91234567",
		Email:   "seed@example.com",
		Address: "Blk 30 Geylang Street 29",
		Class:   "4A",
	})
	require.NoError(t, err)
	return p
}

func TestCachedRepository_GetByNameUsesCacheAfterFirstRead(t *testing.T) {
	cached, repo, _ := newCachedFixture(t)
	ctx := context.Background()

	require.NoError(t, cached.Create(ctx, makePerson(t, "Alice Tan")))

	first, err := cached.GetByName(ctx, "Alice Tan")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getByName)

	second, err := cached.GetByName(ctx, "Alice Tan")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getByName, "second read should come from cache")
	assert.True(t, first.Equals(second))
}

func TestCachedRepository_RosterIsCachedAndInvalidatedByWrites(t *testing.T) {
	cached, repo, _ := newCachedFixture(t)
	ctx := context.Background()

	require.NoError(t, cached.Create(ctx, makePerson(t, "Alice Tan")))

	_, err := cached.GetAll(ctx, person.DefaultListOptions())
	require.NoError(t, err)
	_, err = cached.GetAll(ctx, person.DefaultListOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getAll, "second full listing should come from cache")

	// A write drops the cached roster.
	require.NoError(t, cached.Create(ctx, makePerson(t, "Benson Meier")))

	all, err := cached.GetAll(ctx, person.DefaultListOptions())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.getAll)
	assert.Len(t, all, 2)
}

func TestCachedRepository_PaginatedListingBypassesCache(t *testing.T) {
	cached, repo, cache := newCachedFixture(t)
	ctx := context.Background()

	require.NoError(t, cached.Create(ctx, makePerson(t, "Alice Tan")))

	_, err := cached.GetAll(ctx, person.ListOptions{Limit: 1})
	require.NoError(t, err)
	_, err = cached.GetAll(ctx, person.ListOptions{Limit: 1})
	require.NoError(t, err)

	assert.Equal(t, 2, repo.getAll)
	assert.False(t, cache.hasRoster)
}

func TestCachedRepository_DeadCacheNeverFailsCommands(t *testing.T) {
	cached, _, cache := newCachedFixture(t)
	cache.failing = true
	ctx := context.Background()

	require.NoError(t, cached.Create(ctx, makePerson(t, "Alice Tan")))

	got, err := cached.GetByName(ctx, "Alice Tan")
	require.NoError(t, err)
	assert.Equal(t, "Alice Tan", got.Name().String())

	all, err := cached.GetAll(ctx, person.DefaultListOptions())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, cached.Delete(ctx, "Alice Tan"))
}

func TestCachedRepository_BreakerStopsCallingDeadCache(t *testing.T) {
	cached, _, cache := newCachedFixture(t)
	cache.failing = true
	ctx := context.Background()

	require.NoError(t, cached.Create(ctx, makePerson(t, "Alice Tan")))
	for i := 0; i < 3; i++ {
		_, err := cached.GetByName(ctx, "Alice Tan")
		require.NoError(t, err)
	}

	before := cache.calls
	for i := 0; i < 3; i++ {
		_, err := cached.GetByName(ctx, "Alice Tan")
		require.NoError(t, err)
	}
	assert.Equal(t, before, cache.calls, "open breaker should short-circuit cache calls")
}

func TestCachedRepository_ExistsTrustsCacheHitsOnly(t *testing.T) {
	cached, _, cache := newCachedFixture(t)
	ctx := context.Background()

	require.NoError(t, cached.Create(ctx, makePerson(t, "Alice Tan")))

	// Warm the record cache.
	_, err := cached.GetByName(ctx, "Alice Tan")
	require.NoError(t, err)

	ok, err := cached.Exists(ctx, "Alice Tan")
	require.NoError(t, err)
	assert.True(t, ok)

	// Not in cache and not in storage.
	ok, err = cached.Exists(ctx, "Nobody")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NotContains(t, cache.persons, person.Name("Nobody"))
}
