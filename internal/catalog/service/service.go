// Package service assembles catalog read models: resources decorated with
// their average user rating, and the tag list.
package service

import (
	"context"

	"resourcehub/internal/catalog/models"
	dErrors "resourcehub/pkg/domain-errors"
)

// Store is the catalog persistence contract the read side needs.
type Store interface {
	ListResources(ctx context.Context) ([]models.Resource, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
}

// RatingSource provides rating aggregates. Ratings live in the interaction
// domain; the catalog only projects them.
type RatingSource interface {
	AverageRatings(ctx context.Context) (map[int64]float64, error)
}

// Service serves the catalog read models.
type Service struct {
	store   Store
	ratings RatingSource
}

// New constructs the catalog service.
func New(store Store, ratings RatingSource) *Service {
	return &Service{store: store, ratings: ratings}
}

// ListResources returns every resource with tag labels and average rating.
func (s *Service) ListResources(ctx context.Context) ([]models.Resource, error) {
	resources, err := s.store.ListResources(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list resources")
	}

	averages, err := s.ratings.AverageRatings(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load rating averages")
	}

	for i := range resources {
		if avg, ok := averages[resources[i].ID]; ok {
			a := avg
			resources[i].AverageRating = &a
		}
	}
	return resources, nil
}

// ListTags returns every tag.
func (s *Service) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list tags")
	}
	return tags, nil
}
