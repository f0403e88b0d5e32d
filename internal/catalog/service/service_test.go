package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resourcehub/internal/catalog/models"
	"resourcehub/internal/catalog/store"
	dErrors "resourcehub/pkg/domain-errors"
)

type fakeRatings struct {
	averages map[int64]float64
	err      error
}

func (f *fakeRatings) AverageRatings(context.Context) (map[int64]float64, error) {
	return f.averages, f.err
}

func TestListResourcesDecoratesAverageRating(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	rated := models.Resource{ExternalID: 100, Name: "Rated"}
	_, err := s.UpsertResource(ctx, &rated)
	require.NoError(t, err)
	unrated := models.Resource{ExternalID: 200, Name: "Unrated"}
	_, err = s.UpsertResource(ctx, &unrated)
	require.NoError(t, err)

	svc := New(s, &fakeRatings{averages: map[int64]float64{rated.ID: 4.5}})

	resources, err := svc.ListResources(ctx)
	require.NoError(t, err)
	require.Len(t, resources, 2)

	require.NotNil(t, resources[0].AverageRating)
	assert.InDelta(t, 4.5, *resources[0].AverageRating, 1e-9)
	assert.Nil(t, resources[1].AverageRating)
}

func TestListResourcesRatingFailure(t *testing.T) {
	svc := New(store.NewMemoryStore(), &fakeRatings{err: assert.AnError})
	_, err := svc.ListResources(context.Background())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestListTags(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	_, err := s.UpsertTag(ctx, &models.Tag{ExternalID: 10, Label: "go"})
	require.NoError(t, err)

	svc := New(s, &fakeRatings{})
	tags, err := svc.ListTags(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "go", tags[0].Label)
}
