package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resourcehub/internal/catalog/models"
	"resourcehub/pkg/platform/sentinel"
)

func seed(t *testing.T, s *MemoryStore) {
	t.Helper()
	ctx := context.Background()

	for _, tag := range []models.Tag{
		{ExternalID: 10, Label: "go"},
		{ExternalID: 20, Label: "databases"},
	} {
		created, err := s.UpsertTag(ctx, &tag)
		require.NoError(t, err)
		require.True(t, created)
	}

	created, err := s.UpsertResource(ctx, &models.Resource{
		ExternalID: 100, Author: "ada", Name: "Intro", URL: "https://example.com/intro",
	})
	require.NoError(t, err)
	require.True(t, created)

	require.NoError(t, s.SetResourceTags(ctx, 100, []int64{10, 20}))
}

func TestUpsertTagIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	first := models.Tag{ExternalID: 10, Label: "go"}
	created, err := s.UpsertTag(ctx, &first)
	require.NoError(t, err)
	assert.True(t, created)

	again := models.Tag{ExternalID: 10, Label: "golang"}
	created, err = s.UpsertTag(ctx, &again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	tags, err := s.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "golang", tags[0].Label)
}

func TestUpsertResourceUpdatesInPlace(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	r := models.Resource{ExternalID: 100, Author: "ada", Name: "Intro", URL: "https://a"}
	created, err := s.UpsertResource(ctx, &r)
	require.NoError(t, err)
	assert.True(t, created)

	updated := models.Resource{ExternalID: 100, Author: "grace", Name: "Intro v2", URL: "https://b"}
	created, err = s.UpsertResource(ctx, &updated)
	require.NoError(t, err)
	assert.False(t, created)

	resources, err := s.ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, "grace", resources[0].Author)
	assert.Equal(t, "Intro v2", resources[0].Name)
	assert.Equal(t, "https://b", resources[0].URL)
}

func TestSetResourceTagsReplacesSet(t *testing.T) {
	s := NewMemoryStore()
	seed(t, s)
	ctx := context.Background()

	resources, err := s.ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, resources, 1)
	assert.Equal(t, []string{"go", "databases"}, resources[0].Tags)

	// Shrink to one tag; the removed association must not survive.
	require.NoError(t, s.SetResourceTags(ctx, 100, []int64{20}))
	resources, err = s.ListResources(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"databases"}, resources[0].Tags)

	// Clear entirely.
	require.NoError(t, s.SetResourceTags(ctx, 100, nil))
	resources, err = s.ListResources(ctx)
	require.NoError(t, err)
	assert.Empty(t, resources[0].Tags)
}

func TestSetResourceTagsDropsUnresolvable(t *testing.T) {
	s := NewMemoryStore()
	seed(t, s)
	ctx := context.Background()

	require.NoError(t, s.SetResourceTags(ctx, 100, []int64{10, 999}))
	resources, err := s.ListResources(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, resources[0].Tags)
}

func TestSetResourceTagsUnknownResource(t *testing.T) {
	s := NewMemoryStore()
	err := s.SetResourceTags(context.Background(), 404, []int64{10})
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestFindResourceByID(t *testing.T) {
	s := NewMemoryStore()
	seed(t, s)
	ctx := context.Background()

	resources, err := s.ListResources(ctx)
	require.NoError(t, err)

	found, err := s.FindResourceByID(ctx, resources[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(100), found.ExternalID)

	_, err = s.FindResourceByID(ctx, 9999)
	require.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestListOrderIsInsertionOrder(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	for _, ext := range []int64{300, 100, 200} {
		_, err := s.UpsertResource(ctx, &models.Resource{ExternalID: ext, Name: "r"})
		require.NoError(t, err)
	}

	resources, err := s.ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, resources, 3)
	assert.Equal(t, int64(300), resources[0].ExternalID)
	assert.Equal(t, int64(100), resources[1].ExternalID)
	assert.Equal(t, int64(200), resources[2].ExternalID)
}
