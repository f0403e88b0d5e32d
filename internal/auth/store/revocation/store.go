// Package revocation implements the refresh-token revocation list (TRL).
// Entries are keyed by jti and carry a TTL equal to the token's remaining
// natural lifetime: once revoked, a token fails verification for as long as
// it could otherwise have been used, and the list never outgrows live tokens.
package revocation

import (
	"context"
	"fmt"
	"time"

	"resourcehub/pkg/platform/sentinel"
)

// List is the revocation list consulted on every refresh-token verification.
type List interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

func validateTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("ttl must be positive: %w", sentinel.ErrInvalidState)
	}
	return nil
}
