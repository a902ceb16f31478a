package redis

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// MemoryStore is an in-process implementation of the command surface the
// Client uses. Tests substitute it via NewWithStore; TTLs are honored on
// read rather than with a background sweeper.
type MemoryStore struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values:  make(map[string]string),
		expires: make(map[string]time.Time),
	}
}

func (m *MemoryStore) Ping(ctx context.Context) *redis.StatusCmd {
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("PONG")
	return cmd
}

func (m *MemoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = toString(value)
	if ttl > 0 {
		m.expires[key] = time.Now().Add(ttl)
	} else {
		delete(m.expires, key)
	}

	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (m *MemoryStore) Get(ctx context.Context, key string) *redis.StringCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewStringCmd(ctx)
	value, ok := m.values[key]
	if !ok || m.expired(key) {
		cmd.SetErr(redis.Nil)
		return cmd
	}
	cmd.SetVal(value)
	return cmd
}

func (m *MemoryStore) Incr(ctx context.Context, key string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	cmd := redis.NewIntCmd(ctx)
	current := int64(0)
	if raw, ok := m.values[key]; ok && !m.expired(key) {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			cmd.SetErr(err)
			return cmd
		}
		current = parsed
	}
	current++
	m.values[key] = strconv.FormatInt(current, 10)
	cmd.SetVal(current)
	return cmd
}

func (m *MemoryStore) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := int64(0)
	for _, key := range keys {
		if _, ok := m.values[key]; ok {
			removed++
		}
		delete(m.values, key)
		delete(m.expires, key)
	}

	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(removed)
	return cmd
}

func (m *MemoryStore) expired(key string) bool {
	deadline, ok := m.expires[key]
	if !ok {
		return false
	}
	if time.Now().Before(deadline) {
		return false
	}
	delete(m.values, key)
	delete(m.expires, key)
	return true
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	default:
		return ""
	}
}
