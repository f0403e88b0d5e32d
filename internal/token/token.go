// Package token mints and validates the access/refresh JWT pair that backs
// cookie sessions. It is stateless; revocation lives in
// internal/auth/store/revocation and is consulted by callers holding a list.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"resourcehub/internal/platform/config"
	dErrors "resourcehub/pkg/domain-errors"
)

// Type discriminates the two token kinds carried in the token_type claim.
type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

// Claims is the JWT payload for both token kinds. The jti (RegisteredClaims.ID)
// keys the revocation list for refresh tokens.
type Claims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// UserUUID parses the user_id claim.
func (c *Claims) UserUUID() (uuid.UUID, error) {
	id, err := uuid.Parse(c.UserID)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token subject")
	}
	return id, nil
}

// Pair bundles a freshly issued access and refresh token.
type Pair struct {
	Access           string
	Refresh          string
	RefreshJTI       string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// Service issues and verifies HS256-signed tokens.
type Service struct {
	signingKey []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	clock      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// NewService constructs a token service from auth configuration.
func NewService(cfg config.AuthConfig, opts ...Option) *Service {
	s := &Service{
		signingKey: []byte(cfg.JWTSigningKey),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTokenTTL,
		refreshTTL: cfg.RefreshTokenTTL,
		clock:      time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// AccessTTL exposes the configured access token lifetime (cookie max-age).
func (s *Service) AccessTTL() time.Duration { return s.accessTTL }

// RefreshTTL exposes the configured refresh token lifetime (cookie max-age).
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

// IssuePair mints an access and refresh token for the user.
func (s *Service) IssuePair(userID uuid.UUID) (*Pair, error) {
	now := s.clock()

	access, accessExp, _, err := s.sign(userID, TypeAccess, now, s.accessTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign access token")
	}
	refresh, refreshExp, refreshJTI, err := s.sign(userID, TypeRefresh, now, s.refreshTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign refresh token")
	}

	return &Pair{
		Access:           access,
		Refresh:          refresh,
		RefreshJTI:       refreshJTI,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *Service) sign(userID uuid.UUID, typ Type, now time.Time, ttl time.Duration) (string, time.Time, string, error) {
	expiresAt := now.Add(ttl)
	jti := uuid.NewString()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:    userID.String(),
		TokenType: string(typ),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   userID.String(),
			ID:        jti,
		},
	})
	signed, err := t.SignedString(s.signingKey)
	if err != nil {
		return "", time.Time{}, "", err
	}
	return signed, expiresAt, jti, nil
}

// Validate parses tokenString, verifies its signature and expiry, and checks
// that it carries the expected token type.
func (s *Service) Validate(tokenString string, typ Type) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(s.clock))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if claims.TokenType != string(typ) {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token type")
	}
	return claims, nil
}

// RemainingLifetime returns how long the claims stay naturally valid. Used as
// the revocation TTL so a blacklist entry covers the token's own lifetime and
// no longer.
func (s *Service) RemainingLifetime(claims *Claims) time.Duration {
	if claims == nil || claims.ExpiresAt == nil {
		return 0
	}
	remaining := claims.ExpiresAt.Time.Sub(s.clock())
	if remaining < 0 {
		return 0
	}
	return remaining
}
