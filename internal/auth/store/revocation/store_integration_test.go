//go:build integration

package revocation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resourcehub/pkg/testutil/containers"
)

func TestRedisTRL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	rc := containers.NewRedisContainer(t)
	trl := NewRedisTRL(rc.Client)
	ctx := context.Background()

	require.NoError(t, trl.Revoke(ctx, "jti-1", time.Minute))

	revoked, err := trl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = trl.IsRevoked(ctx, "jti-unknown")
	require.NoError(t, err)
	assert.False(t, revoked)

	// Short TTL lapses.
	require.NoError(t, trl.Revoke(ctx, "jti-short", 50*time.Millisecond))
	time.Sleep(150 * time.Millisecond)
	revoked, err = trl.IsRevoked(ctx, "jti-short")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestPostgresTRL(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pg := containers.NewPostgresContainer(t)
	ctx := context.Background()

	now := time.Now()
	clock := func() time.Time { return now }
	trl := NewPostgresTRL(pg.DB, WithPostgresClock(clock))

	require.NoError(t, trl.Revoke(ctx, "jti-1", time.Minute))

	revoked, err := trl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// Past natural expiry the entry stops matching and purge removes it.
	now = now.Add(2 * time.Minute)
	revoked, err = trl.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	purged, err := trl.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)
}
