// Package user implements the user store.
//
// Error contract, all implementations:
//   - sentinel.ErrNotFound when the requested user does not exist
//   - sentinel.ErrConflict (wrapped, message names the field) on unique violations
//   - wrapped infrastructure errors otherwise
package user

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"resourcehub/internal/auth/models"
	"resourcehub/pkg/platform/sentinel"
)

// MemoryStore keeps users in memory for tests and dev runs.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*models.User
}

// NewMemoryStore constructs an empty in-memory user store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[uuid.UUID]*models.User)}
}

// Create inserts a new user, enforcing email/username/phone uniqueness.
func (s *MemoryStore) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("email already exists: %w", sentinel.ErrConflict)
		}
		if existing.Username == u.Username {
			return fmt.Errorf("username already exists: %w", sentinel.ErrConflict)
		}
		if u.Phone != nil && existing.Phone != nil && *existing.Phone == *u.Phone {
			return fmt.Errorf("phone already exists: %w", sentinel.ErrConflict)
		}
	}

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	clone := *u
	s.users[u.ID] = &clone
	return nil
}

// FindByEmail returns the user with the given email (case-insensitive).
func (s *MemoryStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, fmt.Errorf("user %q: %w", email, sentinel.ErrNotFound)
}

// FindByID returns the user with the given ID.
func (s *MemoryStore) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, fmt.Errorf("user %s: %w", id, sentinel.ErrNotFound)
}

// GetOrCreateByEmail returns the user with the given email, creating it from
// the template when absent. The second return value is true when a new user
// was created. Atomic with respect to the email key.
func (s *MemoryStore) GetOrCreateByEmail(_ context.Context, template *models.User) (*models.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, template.Email) {
			clone := *u
			return &clone, false, nil
		}
	}

	created := *template
	if created.ID == uuid.Nil {
		created.ID = uuid.New()
	}
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now()
	}
	for _, u := range s.users {
		if u.Username == created.Username {
			// Same dedupe rule as the postgres store's retry path.
			created.Username = created.Username + "-" + created.ID.String()[:8]
			break
		}
	}
	s.users[created.ID] = &created
	clone := created
	return &clone, true, nil
}
