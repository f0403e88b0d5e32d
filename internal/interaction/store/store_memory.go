// Package store implements interaction persistence.
//
// Error contract, all implementations:
//   - sentinel.ErrNotFound when a referenced resource row is absent (postgres
//     foreign keys; the memory store relies on the service's existence check)
//   - wrapped infrastructure errors otherwise
//
// Save, Unsave and UpsertRating are idempotent per (user, resource) pair.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"resourcehub/internal/interaction/models"
)

type pairKey struct {
	userID     uuid.UUID
	resourceID int64
}

// MemoryStore keeps interactions in memory for tests and dev runs.
type MemoryStore struct {
	mu      sync.RWMutex
	saved   map[pairKey]*models.SavedResource
	ratings map[pairKey]*models.Rating
}

// NewMemoryStore constructs an empty in-memory interaction store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		saved:   make(map[pairKey]*models.SavedResource),
		ratings: make(map[pairKey]*models.Rating),
	}
}

// Save marks the resource saved for the user. Repeated saves are a no-op.
func (s *MemoryStore) Save(_ context.Context, userID uuid.UUID, resourceID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{userID, resourceID}
	if _, ok := s.saved[key]; ok {
		return nil
	}
	s.saved[key] = &models.SavedResource{
		UserID:     userID,
		ResourceID: resourceID,
		Saved:      true,
		CreatedAt:  time.Now(),
	}
	return nil
}

// Unsave removes the saved row if present. Unsaving a never-saved pair is a
// no-op success.
func (s *MemoryStore) Unsave(_ context.Context, userID uuid.UUID, resourceID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, pairKey{userID, resourceID})
	return nil
}

// ListSaved returns the IDs of the user's saved resources, ascending.
func (s *MemoryStore) ListSaved(_ context.Context, userID uuid.UUID) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []int64
	for key := range s.saved {
		if key.userID == userID {
			out = append(out, key.resourceID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// UpsertRating creates or overwrites the user's rating for a resource. A nil
// Comment leaves any existing comment in place. Returns true when a new row
// was created.
func (s *MemoryStore) UpsertRating(_ context.Context, r *models.Rating) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{r.UserID, r.ResourceID}
	if existing, ok := s.ratings[key]; ok {
		existing.Rating = r.Rating
		if r.Comment != nil {
			existing.Comment = r.Comment
		}
		return false, nil
	}

	clone := *r
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	s.ratings[key] = &clone
	return true, nil
}

// AverageRatings returns the mean rating per resource ID.
func (s *MemoryStore) AverageRatings(_ context.Context) (map[int64]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sums := make(map[int64]int)
	counts := make(map[int64]int)
	for key, r := range s.ratings {
		sums[key.resourceID] += r.Rating
		counts[key.resourceID]++
	}

	out := make(map[int64]float64, len(sums))
	for id, sum := range sums {
		out[id] = float64(sum) / float64(counts[id])
	}
	return out, nil
}

// FindRating returns the user's rating for a resource, or nil when absent.
func (s *MemoryStore) FindRating(_ context.Context, userID uuid.UUID, resourceID int64) (*models.Rating, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if r, ok := s.ratings[pairKey{userID, resourceID}]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, nil
}
