//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/bonitoviento/backend/internal/domain/draft"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newRedisRepository(t *testing.T, ttl time.Duration) *RedisDraftRepository {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client, err := NewRedisClient(ctx, endpoint, "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisDraftRepository(client, "", ttl)
}

func TestRedisDraftRepository(t *testing.T) {
	ctx := context.Background()
	repo := newRedisRepository(t, time.Hour)

	_, err := repo.Load(ctx, "user-1", draft.FormSale)
	assert.True(t, shared.IsNotFound(err))

	require.NoError(t, repo.Save(ctx, newSaleDraft(t, "user-1", `{"buyer":"Frigorífico Guadalupe","heads":12}`)))
	require.NoError(t, repo.Save(ctx, newSaleDraft(t, "user-2", `{"buyer":"Otro"}`)))

	got, err := repo.Load(ctx, "user-1", draft.FormSale)
	require.NoError(t, err)
	assert.JSONEq(t, `{"buyer":"Frigorífico Guadalupe","heads":12}`, string(got.Payload))
	assert.False(t, got.UpdatedAt.IsZero())

	ttl, err := repo.client.TTL(ctx, "bonito:draft:sale:user-1").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, 59*time.Minute)

	require.NoError(t, repo.Clear(ctx, "user-1", draft.FormSale))
	_, err = repo.Load(ctx, "user-1", draft.FormSale)
	assert.True(t, shared.IsNotFound(err))

	_, err = repo.Load(ctx, "user-2", draft.FormSale)
	assert.NoError(t, err)
}
