package redis

import (
	"context"
	"errors"

	"github.com/alem-hub/watson/internal/domain/person"
	"github.com/alem-hub/watson/pkg/circuitbreaker"
	"github.com/alem-hub/watson/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// CACHED REPOSITORY
// ══════════════════════════════════════════════════════════════════════════════

// CachedRepository is a cache-aside decorator over person.Repository.
// Reads try the cache first and repopulate it on miss; any mutation
// invalidates the whole cache, which keeps a small roster trivially
// coherent. All cache calls run through a circuit breaker, so a dead
// Redis never fails a command, it only removes the speedup.
type CachedRepository struct {
	repo    person.Repository
	cache   person.Cache
	breaker *circuitbreaker.CircuitBreaker
	log     *logger.Logger
}

// NewCachedRepository wraps repo with the cache.
func NewCachedRepository(repo person.Repository, cache person.Cache, log *logger.Logger) *CachedRepository {
	if log == nil {
		log = logger.Default()
	}
	log = log.With(logger.Component("cached_repo"))

	breaker := circuitbreaker.CacheBreaker(func(name string, from, to circuitbreaker.State) {
		log.Warn("cache breaker state changed",
			logger.String("breaker", name),
			logger.String("from", from.String()),
			logger.String("to", to.String()),
		)
	})

	return &CachedRepository{
		repo:    repo,
		cache:   cache,
		breaker: breaker,
		log:     log,
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Mutations (write through, then drop the cache)
// ─────────────────────────────────────────────────────────────────────────────

func (r *CachedRepository) Create(ctx context.Context, p *person.Person) error {
	if err := r.repo.Create(ctx, p); err != nil {
		return err
	}
	r.invalidateAll(ctx)
	return nil
}

func (r *CachedRepository) Update(ctx context.Context, p *person.Person) error {
	if err := r.repo.Update(ctx, p); err != nil {
		return err
	}
	r.invalidateAll(ctx)
	return nil
}

func (r *CachedRepository) Delete(ctx context.Context, name person.Name) error {
	if err := r.repo.Delete(ctx, name); err != nil {
		return err
	}
	r.invalidateAll(ctx)
	return nil
}

func (r *CachedRepository) Clear(ctx context.Context) (int, error) {
	removed, err := r.repo.Clear(ctx)
	if err != nil {
		return 0, err
	}
	r.invalidateAll(ctx)
	return removed, nil
}

func (r *CachedRepository) SortByGrade(ctx context.Context, descending bool) error {
	if err := r.repo.SortByGrade(ctx, descending); err != nil {
		return err
	}
	r.invalidateAll(ctx)
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Reads (cache first, storage on miss)
// ─────────────────────────────────────────────────────────────────────────────

func (r *CachedRepository) GetByName(ctx context.Context, name person.Name) (*person.Person, error) {
	var cached *person.Person
	_ = r.breaker.Execute(ctx, func(ctx context.Context) error {
		p, err := r.cache.Get(ctx, name)
		if err != nil {
			if errors.Is(err, ErrCacheMiss) {
				// A miss is a normal outcome, not a cache failure.
				return nil
			}
			return err
		}
		cached = p
		return nil
	})
	if cached != nil {
		return cached, nil
	}

	p, err := r.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	_ = r.breaker.Execute(ctx, func(ctx context.Context) error {
		return r.cache.Set(ctx, p, TTLPersonCache)
	})
	return p, nil
}

func (r *CachedRepository) GetAll(ctx context.Context, opts person.ListOptions) ([]*person.Person, error) {
	// Only the full listing is cached; paginated reads go to storage.
	wholeRoster := opts.Offset == 0 && opts.Limit == 0

	if wholeRoster {
		var cached []*person.Person
		_ = r.breaker.Execute(ctx, func(ctx context.Context) error {
			persons, err := r.cache.GetRoster(ctx)
			if err != nil {
				if errors.Is(err, ErrCacheMiss) {
					return nil
				}
				return err
			}
			cached = persons
			return nil
		})
		if cached != nil {
			return cached, nil
		}
	}

	persons, err := r.repo.GetAll(ctx, opts)
	if err != nil {
		return nil, err
	}

	if wholeRoster {
		_ = r.breaker.Execute(ctx, func(ctx context.Context) error {
			return r.cache.SetRoster(ctx, persons, TTLRosterCache)
		})
	}
	return persons, nil
}

func (r *CachedRepository) Count(ctx context.Context) (int, error) {
	return r.repo.Count(ctx)
}

func (r *CachedRepository) Search(ctx context.Context, keywords []string) ([]*person.Person, error) {
	return r.repo.Search(ctx, keywords)
}

func (r *CachedRepository) Exists(ctx context.Context, name person.Name) (bool, error) {
	// A cached record is proof of existence. Absence proves nothing.
	var hit bool
	_ = r.breaker.Execute(ctx, func(ctx context.Context) error {
		p, err := r.cache.Get(ctx, name)
		if err != nil {
			if errors.Is(err, ErrCacheMiss) {
				return nil
			}
			return err
		}
		hit = p != nil
		return nil
	})
	if hit {
		return true, nil
	}

	return r.repo.Exists(ctx, name)
}

// ─────────────────────────────────────────────────────────────────────────────
// Internals
// ─────────────────────────────────────────────────────────────────────────────

// invalidateAll drops every cached key. Errors are logged, not
// returned: the mutation already succeeded in storage.
func (r *CachedRepository) invalidateAll(ctx context.Context) {
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		return r.cache.InvalidateAll(ctx)
	})
	if err != nil && !errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		r.log.Warn("cache invalidation failed", logger.Err(err))
	}
}
