package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	b := NewMemoryTokenBlacklist()
	b.nowFunc = func() time.Time { return now }

	t.Run("revoked token until ttl", func(t *testing.T) {
		require.NoError(t, b.Revoke(ctx, "jti-1", time.Minute))

		revoked, err := b.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, revoked)

		now = now.Add(2 * time.Minute)
		revoked, err = b.IsRevoked(ctx, "jti-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("non-positive ttl is a no-op", func(t *testing.T) {
		require.NoError(t, b.Revoke(ctx, "jti-2", 0))
		revoked, _ := b.IsRevoked(ctx, "jti-2")
		assert.False(t, revoked)
	})

	t.Run("user revocation covers older tokens only", func(t *testing.T) {
		issued := now.Add(-time.Hour)
		require.NoError(t, b.RevokeUser(ctx, "user-1", time.Hour))

		revoked, err := b.IsUserRevoked(ctx, "user-1", issued)
		require.NoError(t, err)
		assert.True(t, revoked)

		revoked, err = b.IsUserRevoked(ctx, "user-1", now.Add(time.Second))
		require.NoError(t, err)
		assert.False(t, revoked)

		revoked, err = b.IsUserRevoked(ctx, "user-2", issued)
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("cleanup drops expired entries", func(t *testing.T) {
		require.NoError(t, b.Revoke(ctx, "jti-3", time.Minute))
		require.NoError(t, b.RevokeUser(ctx, "user-3", 30*time.Second))

		assert.Zero(t, b.Cleanup())

		now = now.Add(2 * time.Hour)
		// user-1 from the previous case and jti-3, user-3 all expired
		assert.Equal(t, 3, b.Cleanup())

		revoked, err := b.IsUserRevoked(ctx, "user-3", now.Add(-3*time.Hour))
		require.NoError(t, err)
		assert.False(t, revoked)
	})
}
