package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist invalidates JWTs before they expire: single tokens on logout
// and reset-token use, and every token of a user after a password change.
type TokenBlacklist interface {
	// Revoke blacklists a token ID for ttl (the token's remaining lifetime)
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	// RevokeUser rejects every token of userID issued up to now
	RevokeUser(ctx context.Context, userID string, ttl time.Duration) error
	IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error)
}

// RedisTokenBlacklist implements TokenBlacklist using Redis
type RedisTokenBlacklist struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisTokenBlacklist creates a token blacklist on an existing Redis client
func NewRedisTokenBlacklist(client redis.UniversalClient) *RedisTokenBlacklist {
	return &RedisTokenBlacklist{client: client, keyPrefix: "tiles:token:blacklist:"}
}

func (b *RedisTokenBlacklist) jtiKey(jti string) string { return b.keyPrefix + "jti:" + jti }

func (b *RedisTokenBlacklist) userKey(userID string) string { return b.keyPrefix + "user:" + userID }

func (b *RedisTokenBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := b.client.Set(ctx, b.jtiKey(jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to add token to blacklist: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, b.jtiKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token blacklist: %w", err)
	}
	return n > 0, nil
}

func (b *RedisTokenBlacklist) RevokeUser(ctx context.Context, userID string, ttl time.Duration) error {
	if err := b.client.Set(ctx, b.userKey(userID), time.Now().Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to invalidate user tokens: %w", err)
	}
	return nil
}

func (b *RedisTokenBlacklist) IsUserRevoked(ctx context.Context, userID string, issuedAt time.Time) (bool, error) {
	raw, err := b.client.Get(ctx, b.userKey(userID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check user token invalidation: %w", err)
	}
	ts, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, fmt.Errorf("failed to parse invalidation timestamp: %w", err)
	}
	return issuedAt.Unix() < ts, nil
}

var _ TokenBlacklist = (*RedisTokenBlacklist)(nil)

// MemoryTokenBlacklist keeps the blacklist in process memory. Used when
// Redis is disabled; entries are not shared between instances.
type MemoryTokenBlacklist struct {
	mu      sync.Mutex
	tokens  map[string]time.Time // jti -> expiry
	users   map[string]userRevocation
	nowFunc func() time.Time
}

type userRevocation struct {
	at    time.Time
	until time.Time
}

func NewMemoryTokenBlacklist() *MemoryTokenBlacklist {
	return &MemoryTokenBlacklist{
		tokens:  make(map[string]time.Time),
		users:   make(map[string]userRevocation),
		nowFunc: time.Now,
	}
}

func (b *MemoryTokenBlacklist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tokens[jti] = b.nowFunc().Add(ttl)
	return nil
}

func (b *MemoryTokenBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	exp, ok := b.tokens[jti]
	if !ok {
		return false, nil
	}
	if b.nowFunc().After(exp) {
		delete(b.tokens, jti)
		return false, nil
	}
	return true, nil
}

func (b *MemoryTokenBlacklist) RevokeUser(_ context.Context, userID string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.nowFunc()
	b.users[userID] = userRevocation{at: now, until: now.Add(ttl)}
	return nil
}

// IsUserRevoked compares at second precision, matching the JWT iat claim.
// Tokens issued in the revocation second itself stay valid so a fresh login works.
func (b *MemoryTokenBlacklist) IsUserRevoked(_ context.Context, userID string, issuedAt time.Time) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	rev, ok := b.users[userID]
	if !ok {
		return false, nil
	}
	return issuedAt.Unix() < rev.at.Unix(), nil
}

// Cleanup drops entries whose tokens can no longer be presented and
// returns how many were removed.
func (b *MemoryTokenBlacklist) Cleanup() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.nowFunc()
	removed := 0
	for jti, exp := range b.tokens {
		if now.After(exp) {
			delete(b.tokens, jti)
			removed++
		}
	}
	for id, rev := range b.users {
		if now.After(rev.until) {
			delete(b.users, id)
			removed++
		}
	}
	return removed
}

var _ TokenBlacklist = (*MemoryTokenBlacklist)(nil)
