package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/bonitoviento/backend/internal/domain/draft"
	"github.com/bonitoviento/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSaleDraft(t *testing.T, owner, payload string) *draft.Draft {
	t.Helper()
	d, err := draft.NewDraft(owner, draft.FormSale, json.RawMessage(payload))
	require.NoError(t, err)
	return d
}

func TestInMemoryDraftRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryDraftRepository(0)

	t.Run("load missing draft is not found", func(t *testing.T) {
		_, err := repo.Load(ctx, "user-1", draft.FormSale)
		assert.True(t, shared.IsNotFound(err))
	})

	t.Run("save then load", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, newSaleDraft(t, "user-1", `{"buyer":"Frigorífico Guadalupe"}`)))

		got, err := repo.Load(ctx, "user-1", draft.FormSale)
		require.NoError(t, err)
		assert.JSONEq(t, `{"buyer":"Frigorífico Guadalupe"}`, string(got.Payload))
		assert.Equal(t, "user-1", got.Owner)
	})

	t.Run("drafts are keyed by owner", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, newSaleDraft(t, "user-2", `{"buyer":"Otro"}`)))

		mine, err := repo.Load(ctx, "user-1", draft.FormSale)
		require.NoError(t, err)
		assert.JSONEq(t, `{"buyer":"Frigorífico Guadalupe"}`, string(mine.Payload))
	})

	t.Run("save overwrites", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, newSaleDraft(t, "user-1", `{"step":2}`)))

		got, err := repo.Load(ctx, "user-1", draft.FormSale)
		require.NoError(t, err)
		assert.JSONEq(t, `{"step":2}`, string(got.Payload))
	})

	t.Run("returned payload is a copy", func(t *testing.T) {
		got, err := repo.Load(ctx, "user-1", draft.FormSale)
		require.NoError(t, err)
		got.Payload[0] = 'X'

		again, err := repo.Load(ctx, "user-1", draft.FormSale)
		require.NoError(t, err)
		assert.JSONEq(t, `{"step":2}`, string(again.Payload))
	})

	t.Run("clear is idempotent", func(t *testing.T) {
		require.NoError(t, repo.Clear(ctx, "user-1", draft.FormSale))
		require.NoError(t, repo.Clear(ctx, "user-1", draft.FormSale))

		_, err := repo.Load(ctx, "user-1", draft.FormSale)
		assert.True(t, shared.IsNotFound(err))

		_, err = repo.Load(ctx, "user-2", draft.FormSale)
		assert.NoError(t, err)
	})
}

func TestInMemoryDraftRepository_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	repo := NewInMemoryDraftRepository(time.Hour)
	repo.now = func() time.Time { return now }

	require.NoError(t, repo.Save(ctx, newSaleDraft(t, "user-1", `{"step":1}`)))

	now = now.Add(59 * time.Minute)
	_, err := repo.Load(ctx, "user-1", draft.FormSale)
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = repo.Load(ctx, "user-1", draft.FormSale)
	assert.True(t, shared.IsNotFound(err))
}
