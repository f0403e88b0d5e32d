// Package store implements catalog persistence.
//
// Error contract, all implementations:
//   - sentinel.ErrNotFound when a referenced resource does not exist
//   - wrapped infrastructure errors otherwise
//
// Upserts are keyed by external_id and report whether a row was created, so
// reconciler runs stay idempotent.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"resourcehub/internal/catalog/models"
	"resourcehub/pkg/platform/sentinel"
)

// MemoryStore keeps the catalog in memory for tests and dev runs.
type MemoryStore struct {
	mu sync.RWMutex

	nextTagID      int64
	nextResourceID int64

	tags           map[int64]*models.Tag      // by internal id
	tagsByExt      map[int64]int64            // external id -> internal id
	resources      map[int64]*models.Resource // by internal id
	resourcesByExt map[int64]int64

	tagOrder      []int64
	resourceOrder []int64

	resourceTags map[int64][]int64 // resource internal id -> tag internal ids
}

// NewMemoryStore constructs an empty in-memory catalog store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tags:           make(map[int64]*models.Tag),
		tagsByExt:      make(map[int64]int64),
		resources:      make(map[int64]*models.Resource),
		resourcesByExt: make(map[int64]int64),
		resourceTags:   make(map[int64][]int64),
	}
}

// UpsertTag creates or updates the tag keyed by ExternalID and fills in its
// internal ID. Returns true when a new row was created.
func (s *MemoryStore) UpsertTag(_ context.Context, t *models.Tag) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.tagsByExt[t.ExternalID]; ok {
		s.tags[id].Label = t.Label
		t.ID = id
		return false, nil
	}

	s.nextTagID++
	t.ID = s.nextTagID
	clone := *t
	s.tags[t.ID] = &clone
	s.tagsByExt[t.ExternalID] = t.ID
	s.tagOrder = append(s.tagOrder, t.ID)
	return true, nil
}

// UpsertResource creates or updates the resource keyed by ExternalID and fills
// in its internal ID. Returns true when a new row was created.
func (s *MemoryStore) UpsertResource(_ context.Context, r *models.Resource) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id, ok := s.resourcesByExt[r.ExternalID]; ok {
		existing := s.resources[id]
		existing.Author = r.Author
		existing.Name = r.Name
		existing.URL = r.URL
		existing.CreatedAt = r.CreatedAt
		r.ID = id
		return false, nil
	}

	s.nextResourceID++
	r.ID = s.nextResourceID
	clone := *r
	clone.Tags = nil
	s.resources[r.ID] = &clone
	s.resourcesByExt[r.ExternalID] = r.ID
	s.resourceOrder = append(s.resourceOrder, r.ID)
	return true, nil
}

// SetResourceTags replaces the resource's tag set with the tags matching the
// given external IDs. Unresolvable tag IDs are dropped silently; the feed may
// reference tags from a batch that failed to land.
func (s *MemoryStore) SetResourceTags(_ context.Context, resourceExternalID int64, tagExternalIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resourceID, ok := s.resourcesByExt[resourceExternalID]
	if !ok {
		return fmt.Errorf("resource with external id %d: %w", resourceExternalID, sentinel.ErrNotFound)
	}

	var resolved []int64
	for _, ext := range tagExternalIDs {
		if id, ok := s.tagsByExt[ext]; ok {
			resolved = append(resolved, id)
		}
	}
	sort.Slice(resolved, func(i, j int) bool { return resolved[i] < resolved[j] })
	s.resourceTags[resourceID] = resolved
	return nil
}

// ListTags returns all tags in insertion order.
func (s *MemoryStore) ListTags(_ context.Context) ([]models.Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Tag, 0, len(s.tagOrder))
	for _, id := range s.tagOrder {
		out = append(out, *s.tags[id])
	}
	return out, nil
}

// ListResources returns all resources in insertion order with tag labels
// resolved. Rating projections are the service's concern.
func (s *MemoryStore) ListResources(_ context.Context) ([]models.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Resource, 0, len(s.resourceOrder))
	for _, id := range s.resourceOrder {
		r := *s.resources[id]
		r.Tags = s.labelsFor(id)
		out = append(out, r)
	}
	return out, nil
}

// FindResourceByID returns the resource with the given internal ID.
func (s *MemoryStore) FindResourceByID(_ context.Context, id int64) (*models.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.resources[id]
	if !ok {
		return nil, fmt.Errorf("resource %d: %w", id, sentinel.ErrNotFound)
	}
	clone := *r
	clone.Tags = s.labelsFor(id)
	return &clone, nil
}

func (s *MemoryStore) labelsFor(resourceID int64) []string {
	labels := make([]string, 0, len(s.resourceTags[resourceID]))
	for _, tagID := range s.resourceTags[resourceID] {
		labels = append(labels, s.tags[tagID].Label)
	}
	return labels
}
