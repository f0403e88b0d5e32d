package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryTRL is an in-process revocation list for tests and single-instance dev
// runs. Expired entries are dropped lazily on read.
type MemoryTRL struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
	clock   func() time.Time
}

// MemoryTRLOption configures a MemoryTRL instance.
type MemoryTRLOption func(*MemoryTRL)

// WithMemoryClock sets the clock function for testability.
func WithMemoryClock(clock func() time.Time) MemoryTRLOption {
	return func(trl *MemoryTRL) {
		if clock != nil {
			trl.clock = clock
		}
	}
}

// NewMemoryTRL constructs an empty in-memory revocation list.
func NewMemoryTRL(opts ...MemoryTRLOption) *MemoryTRL {
	trl := &MemoryTRL{
		revoked: make(map[string]time.Time),
		clock:   time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(trl)
		}
	}
	return trl
}

// Revoke adds a jti to the list until its natural expiry.
func (t *MemoryTRL) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if jti == "" {
		return nil
	}
	if err := validateTTL(ttl); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revoked[jti] = t.clock().Add(ttl)
	return nil
}

// IsRevoked reports whether the jti is on the list and still within TTL.
func (t *MemoryTRL) IsRevoked(_ context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	expiresAt, ok := t.revoked[jti]
	if !ok {
		return false, nil
	}
	if t.clock().After(expiresAt) {
		delete(t.revoked, jti)
		return false, nil
	}
	return true, nil
}
