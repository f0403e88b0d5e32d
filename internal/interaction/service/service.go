// Package service implements the per-user interaction flows: save/unsave,
// saved listing, and rating upserts.
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	catalogmodels "resourcehub/internal/catalog/models"
	"resourcehub/internal/interaction/models"
	dErrors "resourcehub/pkg/domain-errors"
	"resourcehub/pkg/platform/sentinel"
)

// Store is the interaction persistence contract.
type Store interface {
	Save(ctx context.Context, userID uuid.UUID, resourceID int64) error
	Unsave(ctx context.Context, userID uuid.UUID, resourceID int64) error
	ListSaved(ctx context.Context, userID uuid.UUID) ([]int64, error)
	UpsertRating(ctx context.Context, r *models.Rating) (bool, error)
}

// ResourceFinder resolves resource IDs. Backed by the catalog store.
type ResourceFinder interface {
	FindResourceByID(ctx context.Context, id int64) (*catalogmodels.Resource, error)
}

// ResourceLister returns the decorated catalog read model. Backed by the
// catalog service so saved listings carry tag labels and average ratings.
type ResourceLister interface {
	ListResources(ctx context.Context) ([]catalogmodels.Resource, error)
}

// RateOutcome distinguishes a first rating from an overwrite.
type RateOutcome string

const (
	RateCreated RateOutcome = "created"
	RateUpdated RateOutcome = "updated"
)

// Service serves the interaction flows.
type Service struct {
	store   Store
	finder  ResourceFinder
	catalog ResourceLister
}

// New constructs the interaction service.
func New(store Store, finder ResourceFinder, catalog ResourceLister) *Service {
	return &Service{store: store, finder: finder, catalog: catalog}
}

// Save marks a resource saved for the user. Idempotent; fails with not_found
// when the resource does not exist.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, resourceID int64) error {
	if err := s.resolveResource(ctx, resourceID); err != nil {
		return err
	}
	if err := s.store.Save(ctx, userID, resourceID); err != nil {
		return translateStoreError(err, "failed to save resource")
	}
	return nil
}

// Unsave removes a saved resource for the user. Idempotent; fails with
// not_found when the resource does not exist.
func (s *Service) Unsave(ctx context.Context, userID uuid.UUID, resourceID int64) error {
	if err := s.resolveResource(ctx, resourceID); err != nil {
		return err
	}
	if err := s.store.Unsave(ctx, userID, resourceID); err != nil {
		return translateStoreError(err, "failed to unsave resource")
	}
	return nil
}

// ListSaved returns the user's saved resources in catalog order, carrying the
// same tag and rating projections as the public resource listing.
func (s *Service) ListSaved(ctx context.Context, userID uuid.UUID) ([]catalogmodels.Resource, error) {
	ids, err := s.store.ListSaved(ctx, userID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list saved resources")
	}

	saved := make(map[int64]bool, len(ids))
	for _, id := range ids {
		saved[id] = true
	}

	all, err := s.catalog.ListResources(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]catalogmodels.Resource, 0, len(ids))
	for _, r := range all {
		if saved[r.ID] {
			out = append(out, r)
		}
	}
	return out, nil
}

// Rate upserts the user's rating for a resource. The rating must be present
// and within [1,5]; out-of-range values are rejected, never clamped.
func (s *Service) Rate(ctx context.Context, userID uuid.UUID, resourceID int64, req models.RateRequest) (RateOutcome, error) {
	if req.Rating == nil {
		return "", dErrors.New(dErrors.CodeBadRequest, "rating is required")
	}
	if *req.Rating < 1 || *req.Rating > 5 {
		return "", dErrors.New(dErrors.CodeBadRequest, "rating must be between 1 and 5")
	}

	if err := s.resolveResource(ctx, resourceID); err != nil {
		return "", err
	}

	created, err := s.store.UpsertRating(ctx, &models.Rating{
		UserID:     userID,
		ResourceID: resourceID,
		Rating:     *req.Rating,
		Comment:    req.Comment,
	})
	if err != nil {
		return "", translateStoreError(err, "failed to rate resource")
	}
	if created {
		return RateCreated, nil
	}
	return RateUpdated, nil
}

func (s *Service) resolveResource(ctx context.Context, resourceID int64) error {
	if _, err := s.finder.FindResourceByID(ctx, resourceID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "resource not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve resource")
	}
	return nil
}

func translateStoreError(err error, fallback string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "resource not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, fallback)
}
