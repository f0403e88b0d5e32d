package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"resourcehub/internal/audit"
	"resourcehub/internal/auth/google"
	"resourcehub/internal/auth/models"
	"resourcehub/internal/auth/store/revocation"
	"resourcehub/internal/auth/store/user"
	"resourcehub/internal/platform/config"
	"resourcehub/internal/platform/logger"
	"resourcehub/internal/platform/metrics"
	"resourcehub/internal/token"
	dErrors "resourcehub/pkg/domain-errors"
)

// Registered once per test binary; promauto panics on duplicates.
var testMetrics = metrics.New()

type fakeVerifier struct {
	identity *google.Identity
	err      error
}

func (f *fakeVerifier) Verify(context.Context, string) (*google.Identity, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.identity, nil
}

type ServiceSuite struct {
	suite.Suite

	users    *user.MemoryStore
	tokens   *token.Service
	trl      *revocation.MemoryTRL
	verifier *fakeVerifier
	events   *audit.MemoryStore
	svc      *Service
}

func (s *ServiceSuite) SetupTest() {
	s.users = user.NewMemoryStore()
	s.tokens = token.NewService(config.AuthConfig{
		JWTSigningKey:   "test-signing-key",
		Issuer:          "resourcehub-test",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	})
	s.trl = revocation.NewMemoryTRL()
	s.verifier = &fakeVerifier{}
	s.events = audit.NewMemoryStore()
	s.svc = New(
		s.users,
		s.tokens,
		s.trl,
		s.verifier,
		audit.NewPublisher(s.events, nil),
		testMetrics,
		logger.New(),
	)
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func registerReq() models.RegisterRequest {
	return models.RegisterRequest{
		Email:    "ada@example.com",
		Username: "ada",
		Password: "correct horse",
	}
}

func (s *ServiceSuite) TestRegisterIssuesSessionAndStoresHashedPassword() {
	u, pair, err := s.svc.Register(context.Background(), registerReq())
	s.Require().NoError(err)
	s.Require().NotNil(pair)
	s.NotEmpty(pair.Access)
	s.NotEmpty(pair.Refresh)

	stored, err := s.users.FindByEmail(context.Background(), "ada@example.com")
	s.Require().NoError(err)
	s.Equal(u.ID, stored.ID)
	s.True(stored.IsActive)
	s.Require().True(stored.HasPassword())
	s.NotEqual("correct horse", *stored.PasswordHash)
	s.NoError(bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("correct horse")))

	claims, err := s.tokens.Validate(pair.Access, token.TypeAccess)
	s.Require().NoError(err)
	s.Equal(u.ID.String(), claims.UserID)
}

func (s *ServiceSuite) TestRegisterNormalizesEmail() {
	req := registerReq()
	req.Email = "  Ada@Example.COM "
	u, _, err := s.svc.Register(context.Background(), req)
	s.Require().NoError(err)
	s.Equal("ada@example.com", u.Email)
}

func (s *ServiceSuite) TestRegisterDuplicateEmailIsValidationFailure() {
	_, _, err := s.svc.Register(context.Background(), registerReq())
	s.Require().NoError(err)

	dup := registerReq()
	dup.Username = "someone-else"
	_, _, err = s.svc.Register(context.Background(), dup)
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	s.Contains(dErrors.MessageOf(err), "email")
}

func (s *ServiceSuite) TestRegisterValidation() {
	cases := []struct {
		name   string
		mutate func(*models.RegisterRequest)
	}{
		{"missing email", func(r *models.RegisterRequest) { r.Email = "" }},
		{"malformed email", func(r *models.RegisterRequest) { r.Email = "not-an-email" }},
		{"missing username", func(r *models.RegisterRequest) { r.Username = "  " }},
		{"short password", func(r *models.RegisterRequest) { r.Password = "short" }},
		{"password mismatch", func(r *models.RegisterRequest) { r.Password2 = "different-thing" }},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			req := registerReq()
			tc.mutate(&req)
			_, _, err := s.svc.Register(context.Background(), req)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
		})
	}
}

func (s *ServiceSuite) TestLoginSucceedsWithCorrectPassword() {
	_, _, err := s.svc.Register(context.Background(), registerReq())
	s.Require().NoError(err)

	u, pair, err := s.svc.Login(context.Background(), models.LoginRequest{
		Email:    "ada@example.com",
		Password: "correct horse",
	})
	s.Require().NoError(err)
	s.Equal("ada@example.com", u.Email)
	s.NotEmpty(pair.Refresh)
}

func (s *ServiceSuite) TestLoginRejectsBadCredentials() {
	_, _, err := s.svc.Register(context.Background(), registerReq())
	s.Require().NoError(err)

	cases := []struct {
		name string
		req  models.LoginRequest
	}{
		{"wrong password", models.LoginRequest{Email: "ada@example.com", Password: "wrong"}},
		{"unknown email", models.LoginRequest{Email: "nobody@example.com", Password: "correct horse"}},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, _, err := s.svc.Login(context.Background(), tc.req)
			s.Require().Error(err)
			s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
			s.Equal("invalid email or password", dErrors.MessageOf(err))
		})
	}
}

func (s *ServiceSuite) TestLoginRejectsGoogleOnlyAccount() {
	s.verifier.identity = &google.Identity{Email: "g@example.com", EmailVerified: true, Name: "G"}
	_, _, err := s.svc.GoogleLogin(context.Background(), "raw-token")
	s.Require().NoError(err)

	_, _, err = s.svc.Login(context.Background(), models.LoginRequest{
		Email:    "g@example.com",
		Password: "anything at all",
	})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *ServiceSuite) TestGoogleLoginCreatesUserOnce() {
	s.verifier.identity = &google.Identity{Email: "Ada@Example.com", EmailVerified: true, Name: "Ada L"}

	first, pair, err := s.svc.GoogleLogin(context.Background(), "raw-token")
	s.Require().NoError(err)
	s.Equal("ada@example.com", first.Email)
	s.Equal("Ada L", first.Username)
	s.False(first.HasPassword())
	s.NotEmpty(pair.Access)

	second, _, err := s.svc.GoogleLogin(context.Background(), "raw-token")
	s.Require().NoError(err)
	s.Equal(first.ID, second.ID)
}

func (s *ServiceSuite) TestGoogleLoginPropagatesVerifierError() {
	s.verifier.err = dErrors.New(dErrors.CodeBadRequest, "invalid google token")
	_, _, err := s.svc.GoogleLogin(context.Background(), "garbage")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *ServiceSuite) TestGoogleLoginRequiresToken() {
	_, _, err := s.svc.GoogleLogin(context.Background(), "  ")
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func (s *ServiceSuite) TestLogoutRevokesRefreshToken() {
	_, pair, err := s.svc.Register(context.Background(), registerReq())
	s.Require().NoError(err)

	s.svc.Logout(context.Background(), pair.Refresh)

	revoked, err := s.trl.IsRevoked(context.Background(), pair.RefreshJTI)
	s.Require().NoError(err)
	s.True(revoked)
}

func (s *ServiceSuite) TestLogoutSwallowsGarbageToken() {
	s.NotPanics(func() {
		s.svc.Logout(context.Background(), "not-a-jwt")
		s.svc.Logout(context.Background(), "")
	})
}

func TestUsernameFromIdentity(t *testing.T) {
	require.Equal(t, "Ada L", usernameFromIdentity(&google.Identity{Email: "a@b.c", Name: "Ada L"}))
	require.Equal(t, "ada", usernameFromIdentity(&google.Identity{Email: "ada@example.com"}))
}
