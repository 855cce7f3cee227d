package redis

import (
	"context"
	"fmt"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientSuccess(t *testing.T) {
	s := miniredis.RunT(t)

	ctx := context.Background()
	client, err := NewClient(ctx, fmt.Sprintf("redis://%s/2", s.Addr()), 7)
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 7, client.Options().PoolSize)
	assert.Equal(t, 2, client.Options().DB)
	assert.NoError(t, Ping(ctx, client))
}

func TestNewClientInvalidURL(t *testing.T) {
	_, err := NewClient(context.Background(), "://bad-url", 0)
	assert.Error(t, err)
}

func TestNewClientPingFailure(t *testing.T) {
	s := miniredis.RunT(t)
	url := fmt.Sprintf("redis://%s", s.Addr())
	s.Close()

	_, err := NewClient(context.Background(), url, 0)
	assert.ErrorContains(t, err, "failed to ping redis")
}
