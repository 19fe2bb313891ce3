package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRevoker_Revoke(t *testing.T) {
	db, mock := redismock.NewClientMock()
	revoker := NewRedisRevoker(db)
	ctx := context.Background()

	mock.ExpectSet(revokedKeyPrefix+"jti-1", 1, time.Hour).SetVal("OK")
	require.NoError(t, revoker.Revoke(ctx, "jti-1", time.Hour))

	// expired tokens are not stored
	require.NoError(t, revoker.Revoke(ctx, "jti-2", -time.Minute))

	mock.ExpectSet(revokedKeyPrefix+"jti-3", 1, time.Minute).SetErr(errors.New("redis down"))
	assert.Error(t, revoker.Revoke(ctx, "jti-3", time.Minute))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisRevoker_IsRevoked(t *testing.T) {
	db, mock := redismock.NewClientMock()
	revoker := NewRedisRevoker(db)
	ctx := context.Background()

	mock.ExpectExists(revokedKeyPrefix + "jti-1").SetVal(1)
	revoked, err := revoker.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mock.ExpectExists(revokedKeyPrefix + "jti-2").SetVal(0)
	revoked, err = revoker.IsRevoked(ctx, "jti-2")
	require.NoError(t, err)
	assert.False(t, revoked)

	mock.ExpectExists(revokedKeyPrefix + "jti-3").SetErr(errors.New("redis down"))
	_, err = revoker.IsRevoked(ctx, "jti-3")
	assert.Error(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}
