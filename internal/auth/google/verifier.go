// Package google verifies Google ID tokens and maps them to a local identity.
package google

import (
	"context"

	"google.golang.org/api/idtoken"

	"resourcehub/internal/platform/config"
	dErrors "resourcehub/pkg/domain-errors"
)

// Identity is the subset of Google token claims the auth service needs.
type Identity struct {
	Email         string
	EmailVerified bool
	Name          string
}

// Verifier validates Google-issued ID tokens against the configured client id.
type Verifier struct {
	clientID string
}

// NewVerifier constructs a Verifier. The client id is the token audience.
func NewVerifier(cfg config.GoogleConfig) *Verifier {
	return &Verifier{clientID: cfg.ClientID}
}

// Verify checks the token's signature, expiry and audience with Google's
// public keys and extracts the identity claims.
func (v *Verifier) Verify(ctx context.Context, rawToken string) (*Identity, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.clientID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid google token")
	}

	identity := &Identity{
		Email:         claimString(payload, "email"),
		EmailVerified: claimBool(payload, "email_verified"),
		Name:          claimString(payload, "name"),
	}
	if identity.Email == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "google token is missing the email claim")
	}
	return identity, nil
}

func claimString(payload *idtoken.Payload, key string) string {
	if v, ok := payload.Claims[key].(string); ok {
		return v
	}
	return ""
}

func claimBool(payload *idtoken.Payload, key string) bool {
	switch v := payload.Claims[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
