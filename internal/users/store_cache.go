package users

import (
	"context"
	"encoding/json"
	"time"

	"userdir/internal/platform/metrics"
	platformredis "userdir/internal/platform/redis"
)

// CachedStore layers a redis read-through cache over FindByID. Mutations
// invalidate before delegating results back to callers, so the cache can only
// lag by the TTL, never serve deleted records forever. Cache failures degrade
// to the primary store.
type CachedStore struct {
	primary Store
	redis   *platformredis.Client
	ttl     time.Duration
	metrics *metrics.Metrics
}

func NewCachedStore(primary Store, redis *platformredis.Client, ttl time.Duration, m *metrics.Metrics) *CachedStore {
	return &CachedStore{primary: primary, redis: redis, ttl: ttl, metrics: m}
}

func cacheKey(id string) string { return "user:" + id }

func (s *CachedStore) FindByID(ctx context.Context, id string) (User, error) {
	raw, err := s.redis.Get(ctx, cacheKey(id)).Bytes()
	if err == nil {
		var user User
		if err := json.Unmarshal(raw, &user); err == nil {
			if s.metrics != nil {
				s.metrics.CacheHits.Inc()
			}
			return user, nil
		}
	}
	if s.metrics != nil {
		s.metrics.CacheMisses.Inc()
	}

	user, err := s.primary.FindByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if raw, err := json.Marshal(user); err == nil {
		_ = s.redis.Set(ctx, cacheKey(id), raw, s.ttl).Err()
	}
	return user, nil
}

func (s *CachedStore) Create(ctx context.Context, user User) error {
	return s.primary.Create(ctx, user)
}

func (s *CachedStore) Update(ctx context.Context, user User) error {
	if err := s.primary.Update(ctx, user); err != nil {
		return err
	}
	_ = s.redis.Del(ctx, cacheKey(user.ID)).Err()
	return nil
}

func (s *CachedStore) Delete(ctx context.Context, id string) error {
	if err := s.primary.Delete(ctx, id); err != nil {
		return err
	}
	_ = s.redis.Del(ctx, cacheKey(id)).Err()
	return nil
}

func (s *CachedStore) ListIDs(ctx context.Context) ([]string, error) {
	return s.primary.ListIDs(ctx)
}

func (s *CachedStore) List(ctx context.Context, filter ListFilter) (Page, error) {
	return s.primary.List(ctx, filter)
}

func (s *CachedStore) Ping(ctx context.Context) error {
	return s.primary.Ping(ctx)
}

var _ Store = (*CachedStore)(nil)
