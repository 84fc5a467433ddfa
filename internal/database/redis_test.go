package database_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook-app/daybook-backend/internal/database"
)

func TestConnectRedis(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	require.NoError(t, database.ConnectRedis("redis://"+s.Addr()))
	t.Cleanup(func() { database.DisconnectRedis() })

	require.NotNil(t, database.RedisClient)
	assert.NoError(t, database.RedisClient.Ping(context.Background()).Err())
}

func TestConnectRedisInvalidURI(t *testing.T) {
	assert.Error(t, database.ConnectRedis("not-a-redis-uri"))
}

func TestConnectRedisUnreachable(t *testing.T) {
	// Nothing listens on port 1; the startup ping must surface the failure.
	assert.Error(t, database.ConnectRedis("redis://127.0.0.1:1"))
}
