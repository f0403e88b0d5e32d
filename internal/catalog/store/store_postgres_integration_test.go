//go:build integration

package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resourcehub/internal/catalog/models"
	"resourcehub/pkg/platform/sentinel"
	"resourcehub/pkg/testutil/containers"
)

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pg := containers.NewPostgresContainer(t)
	store := NewPostgres(pg.DB)
	ctx := context.Background()

	t.Run("tag upsert is idempotent", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))

		first := models.Tag{ExternalID: 10, Label: "go"}
		created, err := store.UpsertTag(ctx, &first)
		require.NoError(t, err)
		assert.True(t, created)

		again := models.Tag{ExternalID: 10, Label: "golang"}
		created, err = store.UpsertTag(ctx, &again)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, again.ID)

		tags, err := store.ListTags(ctx)
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "golang", tags[0].Label)
	})

	t.Run("resource upsert overwrites fields", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))

		r := models.Resource{ExternalID: 100, Author: "ada", Name: "Intro", URL: "https://a"}
		created, err := store.UpsertResource(ctx, &r)
		require.NoError(t, err)
		assert.True(t, created)

		updated := models.Resource{ExternalID: 100, Author: "grace", Name: "Intro v2", URL: "https://b"}
		created, err = store.UpsertResource(ctx, &updated)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, r.ID, updated.ID)

		resources, err := store.ListResources(ctx)
		require.NoError(t, err)
		require.Len(t, resources, 1)
		assert.Equal(t, "grace", resources[0].Author)
	})

	t.Run("resource tag replacement", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))

		for _, tag := range []models.Tag{{ExternalID: 10, Label: "go"}, {ExternalID: 20, Label: "db"}} {
			_, err := store.UpsertTag(ctx, &tag)
			require.NoError(t, err)
		}
		r := models.Resource{ExternalID: 100, Name: "Intro"}
		_, err := store.UpsertResource(ctx, &r)
		require.NoError(t, err)

		// 999 has no local tag row and is dropped.
		require.NoError(t, store.SetResourceTags(ctx, 100, []int64{10, 20, 999}))
		found, err := store.FindResourceByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"go", "db"}, found.Tags)

		// Shrink: the removed association must not survive.
		require.NoError(t, store.SetResourceTags(ctx, 100, []int64{20}))
		found, err = store.FindResourceByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"db"}, found.Tags)

		require.NoError(t, store.SetResourceTags(ctx, 100, nil))
		found, err = store.FindResourceByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Empty(t, found.Tags)
	})

	t.Run("set tags on missing resource", func(t *testing.T) {
		require.NoError(t, pg.TruncateAll(ctx))
		err := store.SetResourceTags(ctx, 404, []int64{10})
		require.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
