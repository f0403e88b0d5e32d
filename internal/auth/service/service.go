// Package service implements the authentication flows: password registration
// and login, Google sign-in, and best-effort logout with refresh revocation.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"resourcehub/internal/audit"
	"resourcehub/internal/auth/google"
	"resourcehub/internal/auth/models"
	"resourcehub/internal/auth/store/revocation"
	"resourcehub/internal/platform/metrics"
	"resourcehub/internal/token"
	dErrors "resourcehub/pkg/domain-errors"
	"resourcehub/pkg/platform/sentinel"
	"resourcehub/pkg/requestcontext"
)

// UserStore is the persistence contract the auth service needs.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetOrCreateByEmail(ctx context.Context, template *models.User) (*models.User, bool, error)
}

// IdentityVerifier validates third-party ID tokens.
type IdentityVerifier interface {
	Verify(ctx context.Context, rawToken string) (*google.Identity, error)
}

// AuditPublisher records audit events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service wires the auth flows together.
type Service struct {
	users   UserStore
	tokens  *token.Service
	trl     revocation.List
	google  IdentityVerifier
	audit   AuditPublisher
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New constructs the auth service.
func New(
	users UserStore,
	tokens *token.Service,
	trl revocation.List,
	googleVerifier IdentityVerifier,
	auditPublisher AuditPublisher,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		trl:     trl,
		google:  googleVerifier,
		audit:   auditPublisher,
		metrics: m,
		logger:  logger,
	}
}

// Register creates a user from the request and issues a session token pair.
// Duplicate email/username surfaces as a 400-class validation failure and
// leaves no row behind.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, *token.Pair, error) {
	if err := validateRegister(req); err != nil {
		return nil, nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}
	hashStr := string(hash)

	u := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Username:     strings.TrimSpace(req.Username),
		PasswordHash: &hashStr,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			// The public contract treats duplicates as validation failures.
			return nil, nil, dErrors.Wrap(err, dErrors.CodeBadRequest, conflictMessage(err))
		}
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	pair, err := s.tokens.IssuePair(u.ID)
	if err != nil {
		return nil, nil, err
	}

	s.metrics.UsersCreated.Inc()
	s.emit(ctx, audit.ActionRegister, audit.OutcomeSuccess, u.ID, u.Email)
	return u, pair, nil
}

// Login authenticates by email and password and issues a session token pair.
func (s *Service) Login(ctx context.Context, req models.LoginRequest) (*models.User, *token.Pair, error) {
	invalid := dErrors.New(dErrors.CodeBadRequest, "invalid email or password")

	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, nil, invalid
		}
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up user")
	}

	if !u.IsActive || !u.HasPassword() {
		// Same answer as a bad password: don't leak account state.
		return nil, nil, invalid
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(req.Password)); err != nil {
		s.emit(ctx, audit.ActionLogin, audit.OutcomeFailure, u.ID, "bad password")
		return nil, nil, invalid
	}

	pair, err := s.tokens.IssuePair(u.ID)
	if err != nil {
		return nil, nil, err
	}

	s.metrics.Logins.Inc()
	s.emit(ctx, audit.ActionLogin, audit.OutcomeSuccess, u.ID, "")
	return u, pair, nil
}

// GoogleLogin verifies a Google ID token, finds or atomically creates the
// matching user, and issues a session token pair. Users created this way have
// no password and authenticate through Google only.
func (s *Service) GoogleLogin(ctx context.Context, rawToken string) (*models.User, *token.Pair, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, nil, dErrors.New(dErrors.CodeBadRequest, "token is required")
	}

	identity, err := s.google.Verify(ctx, rawToken)
	if err != nil {
		return nil, nil, err
	}

	template := &models.User{
		Email:    strings.ToLower(identity.Email),
		Username: usernameFromIdentity(identity),
		IsActive: true,
	}
	u, created, err := s.users.GetOrCreateByEmail(ctx, template)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve google user")
	}
	if !u.IsActive {
		return nil, nil, dErrors.New(dErrors.CodeBadRequest, "account is disabled")
	}

	pair, err := s.tokens.IssuePair(u.ID)
	if err != nil {
		return nil, nil, err
	}

	if created {
		s.metrics.UsersCreated.Inc()
	}
	s.metrics.Logins.Inc()
	s.emit(ctx, audit.ActionGoogleLogin, audit.OutcomeSuccess, u.ID, u.Email)
	return u, pair, nil
}

// Logout revokes the refresh token carried in the cookie, best-effort: a
// malformed, expired or unrevocable token is logged and swallowed so logout
// always succeeds from the client's point of view.
func (s *Service) Logout(ctx context.Context, refreshToken string) {
	var actorID uuid.UUID

	if refreshToken != "" {
		claims, err := s.tokens.Validate(refreshToken, token.TypeRefresh)
		if err != nil {
			s.logger.DebugContext(ctx, "logout with unusable refresh token", "error", err)
		} else {
			if id, idErr := claims.UserUUID(); idErr == nil {
				actorID = id
			}
			if ttl := s.tokens.RemainingLifetime(claims); ttl > 0 {
				if err := s.trl.Revoke(ctx, claims.ID, ttl); err != nil {
					s.logger.WarnContext(ctx, "failed to revoke refresh token on logout",
						"error", err,
						"jti", claims.ID,
					)
				}
			}
		}
	}

	s.emit(ctx, audit.ActionLogout, audit.OutcomeSuccess, actorID, "")
}

func (s *Service) emit(ctx context.Context, action audit.Action, outcome audit.Outcome, actorID uuid.UUID, detail string) {
	event := audit.Event{
		Action:    action,
		Outcome:   outcome,
		ActorID:   actorID,
		Detail:    detail,
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
	}
	if err := s.audit.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event",
			"error", err,
			"action", action,
		)
	}
}

func validateRegister(req models.RegisterRequest) error {
	email := strings.TrimSpace(req.Email)
	if email == "" || !strings.Contains(email, "@") {
		return dErrors.New(dErrors.CodeBadRequest, "a valid email is required")
	}
	username := strings.TrimSpace(req.Username)
	if username == "" || len(username) > 50 {
		return dErrors.New(dErrors.CodeBadRequest, "username must be between 1 and 50 characters")
	}
	if len(req.Password) < 8 {
		return dErrors.New(dErrors.CodeBadRequest, "password must be at least 8 characters")
	}
	if req.Password2 != "" && req.Password != req.Password2 {
		return dErrors.New(dErrors.CodeBadRequest, "passwords do not match")
	}
	return nil
}

func conflictMessage(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return "email already exists"
	case strings.Contains(msg, "username"):
		return "username already exists"
	case strings.Contains(msg, "phone"):
		return "phone already exists"
	default:
		return "account already exists"
	}
}

func usernameFromIdentity(identity *google.Identity) string {
	if name := strings.TrimSpace(identity.Name); name != "" {
		return name
	}
	if at := strings.Index(identity.Email, "@"); at > 0 {
		return identity.Email[:at]
	}
	return identity.Email
}
