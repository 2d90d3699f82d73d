package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevokedTokenRepository_FirstRevokeWins(t *testing.T) {
	repo := NewRevokedTokenRepository(newTestDB(t))
	ctx := context.Background()
	exp := time.Now().Add(time.Hour)

	revoked, err := repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	first, err := repo.Revoke(ctx, "jti-1", exp)
	require.NoError(t, err)
	assert.True(t, first)

	second, err := repo.Revoke(ctx, "jti-1", exp)
	require.NoError(t, err)
	assert.False(t, second)

	revoked, err = repo.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevokedTokenRepository_PurgesExpired(t *testing.T) {
	db := newTestDB(t)
	repo := NewRevokedTokenRepository(db)
	ctx := context.Background()

	_, err := repo.Revoke(ctx, "old", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = repo.Revoke(ctx, "new", time.Now().Add(time.Hour))
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&RevokedTokenModel{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
