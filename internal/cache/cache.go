package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/formosafoodlab/nightmarket-atlas/pkg/logger"
	"github.com/formosafoodlab/nightmarket-atlas/pkg/redis"
)

// Store is a read-through JSON cache over Redis. Invalidation is by
// generation counter: every key embeds the scope's current version, and a
// write bumps the version so stale keys simply age out via TTL. A nil Store
// (or one built without a Redis client) disables caching entirely, which is
// the normal local-dev configuration.
type Store struct {
	client *redis.Client
	logg   *logger.Logger
}

func New(client *redis.Client, logg *logger.Logger) *Store {
	if client == nil {
		return nil
	}
	return &Store{client: client, logg: logg}
}

// Key builds a versioned cache key for the scope. The boolean is false when
// caching is disabled or the version lookup failed; callers skip the cache.
func (s *Store) Key(ctx context.Context, scope string, parts ...string) (string, bool) {
	if s == nil || s.client == nil {
		return "", false
	}

	version, err := s.client.Get(ctx, s.client.VersionKey(scope))
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.warn(ctx, "cache.version_lookup_failed", err)
			return "", false
		}
		version = "0"
	}

	return s.client.CacheKey(scope, append([]string{"v" + version}, parts...)...), true
}

// GetJSON loads and decodes a cached value. A miss or any Redis failure
// returns false; the caller falls through to the source of truth.
func (s *Store) GetJSON(ctx context.Context, key string, dest any) bool {
	if s == nil || s.client == nil {
		return false
	}

	raw, err := s.client.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.warn(ctx, "cache.get_failed", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		s.warn(ctx, "cache.decode_failed", err)
		return false
	}
	return true
}

// SetJSON stores a value best-effort; failures are logged, never propagated.
func (s *Store) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if s == nil || s.client == nil {
		return
	}

	raw, err := json.Marshal(value)
	if err != nil {
		s.warn(ctx, "cache.encode_failed", err)
		return
	}
	if err := s.client.Set(ctx, key, string(raw), ttl); err != nil {
		s.warn(ctx, "cache.set_failed", err)
	}
}

// Bump advances the scope's generation, invalidating every key minted under
// the previous version.
func (s *Store) Bump(ctx context.Context, scope string) {
	if s == nil || s.client == nil {
		return
	}
	if _, err := s.client.Incr(ctx, s.client.VersionKey(scope)); err != nil {
		s.warn(ctx, "cache.bump_failed", err)
	}
}

func (s *Store) warn(ctx context.Context, msg string, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithField(ctx, "cache_error", err.Error())
	s.logg.Warn(ctx, msg)
}

// PageKey renders pagination inputs into stable key segments.
func PageKey(page, limit int) []string {
	return []string{"p" + strconv.Itoa(page), "l" + strconv.Itoa(limit)}
}
