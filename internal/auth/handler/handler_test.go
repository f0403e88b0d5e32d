package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"resourcehub/internal/audit"
	"resourcehub/internal/auth/cookies"
	"resourcehub/internal/auth/google"
	"resourcehub/internal/auth/service"
	"resourcehub/internal/auth/store/revocation"
	"resourcehub/internal/auth/store/user"
	"resourcehub/internal/platform/config"
	"resourcehub/internal/platform/logger"
	"resourcehub/internal/platform/metrics"
	mw "resourcehub/internal/platform/middleware"
	"resourcehub/internal/token"
)

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

type HandlerSuite struct {
	suite.Suite

	authCfg  config.AuthConfig
	tokens   *token.Service
	trl      *revocation.MemoryTRL
	verifier *fakeVerifier
	router   chi.Router
}

func (s *HandlerSuite) SetupTest() {
	s.authCfg = config.AuthConfig{
		JWTSigningKey:   "handler-test-key",
		Issuer:          "resourcehub-test",
		AccessTokenTTL:  30 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	s.tokens = token.NewService(s.authCfg)
	s.trl = revocation.NewMemoryTRL()
	s.verifier = &fakeVerifier{}

	log := logger.New()
	svc := service.New(
		user.NewMemoryStore(),
		s.tokens,
		s.trl,
		s.verifier,
		audit.NewPublisher(audit.NewMemoryStore(), nil),
		testMetrics,
		log,
	)
	h := New(svc, s.tokens.AccessTTL(), s.tokens.RefreshTTL(), log)

	s.router = chi.NewRouter()
	h.RegisterRoutes(s.router, mw.SessionAuth(s.tokens, s.trl, testMetrics, log))
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) do(method, path string, body any, reqCookies ...*http.Cookie) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for _, c := range reqCookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func responseCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func (s *HandlerSuite) register() (access, refresh *http.Cookie) {
	rec := s.do(http.MethodPost, "/auth/register", map[string]string{
		"email":    "ada@example.com",
		"username": "ada",
		"password": "correct horse",
	})
	s.Require().Equal(http.StatusCreated, rec.Code)
	access = responseCookie(rec, cookies.AccessCookie)
	refresh = responseCookie(rec, cookies.RefreshCookie)
	s.Require().NotNil(access)
	s.Require().NotNil(refresh)
	return access, refresh
}

func (s *HandlerSuite) TestRegisterSetsSessionCookies() {
	access, refresh := s.register()

	s.Equal(1800, access.MaxAge)
	s.Equal(604800, refresh.MaxAge)
	for _, c := range []*http.Cookie{access, refresh} {
		s.True(c.HttpOnly)
		s.True(c.Secure)
		s.Equal(http.SameSiteNoneMode, c.SameSite)
		s.Equal("/", c.Path)
	}
}

func (s *HandlerSuite) TestRegisterDuplicateEmail() {
	s.register()

	rec := s.do(http.MethodPost, "/auth/register", map[string]string{
		"email":    "ada@example.com",
		"username": "ada2",
		"password": "correct horse",
	})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Nil(responseCookie(rec, cookies.AccessCookie))

	var body map[string]string
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal("bad_request", body["error"])
	s.Contains(body["error_description"], "email")
}

func (s *HandlerSuite) TestRegisterMalformedBody() {
	req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *HandlerSuite) TestLoginSetsSessionCookies() {
	s.register()

	rec := s.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "correct horse",
	})
	s.Equal(http.StatusOK, rec.Code)
	s.NotNil(responseCookie(rec, cookies.AccessCookie))
	s.NotNil(responseCookie(rec, cookies.RefreshCookie))
}

func (s *HandlerSuite) TestLoginBadPassword() {
	s.register()

	rec := s.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong password",
	})
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Nil(responseCookie(rec, cookies.AccessCookie))
}

func (s *HandlerSuite) TestGoogleLogin() {
	s.verifier.identity = &google.Identity{Email: "g@example.com", EmailVerified: true, Name: "G"}

	rec := s.do(http.MethodPost, "/auth/google", map[string]string{"token": "raw-google-token"})
	s.Equal(http.StatusOK, rec.Code)
	s.NotNil(responseCookie(rec, cookies.AccessCookie))
	s.NotNil(responseCookie(rec, cookies.RefreshCookie))
}

func (s *HandlerSuite) TestCheckAuthWithValidAccessToken() {
	access, _ := s.register()

	rec := s.do(http.MethodGet, "/auth/check-auth", nil, access)
	s.Equal(http.StatusOK, rec.Code)
	// No refresh happened, so no cookie mutation.
	s.Nil(responseCookie(rec, cookies.AccessCookie))
}

func (s *HandlerSuite) TestCheckAuthWithoutCookies() {
	rec := s.do(http.MethodGet, "/auth/check-auth", nil)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlerSuite) TestCheckAuthSilentRefreshRotatesRefreshToken() {
	_, refresh := s.register()

	// An access token that expired an hour ago, signed with the same key.
	past := time.Now().Add(-2 * time.Hour)
	staleTokens := token.NewService(s.authCfg, token.WithClock(func() time.Time { return past }))
	stalePair, err := staleTokens.IssuePair(s.registeredUserID(refresh))
	s.Require().NoError(err)
	staleAccess := &http.Cookie{Name: cookies.AccessCookie, Value: stalePair.Access}

	rec := s.do(http.MethodGet, "/auth/check-auth", nil, staleAccess, refresh)
	s.Equal(http.StatusOK, rec.Code)

	newAccess := responseCookie(rec, cookies.AccessCookie)
	newRefresh := responseCookie(rec, cookies.RefreshCookie)
	s.Require().NotNil(newAccess)
	s.Require().NotNil(newRefresh)
	s.NotEqual(refresh.Value, newRefresh.Value)

	// The rotated-out refresh token is spent.
	rec = s.do(http.MethodGet, "/auth/check-auth", nil, refresh)
	s.Equal(http.StatusUnauthorized, rec.Code)

	// The fresh pair works.
	rec = s.do(http.MethodGet, "/auth/check-auth", nil, newAccess)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerSuite) TestLogoutClearsCookiesAndRevokesRefresh() {
	_, refresh := s.register()

	rec := s.do(http.MethodPost, "/auth/logout", nil, refresh)
	s.Equal(http.StatusOK, rec.Code)

	access := responseCookie(rec, cookies.AccessCookie)
	cleared := responseCookie(rec, cookies.RefreshCookie)
	s.Require().NotNil(access)
	s.Require().NotNil(cleared)
	s.Less(access.MaxAge, 0)
	s.Less(cleared.MaxAge, 0)

	// The revoked refresh token can no longer mint a session.
	rec = s.do(http.MethodGet, "/auth/check-auth", nil, refresh)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *HandlerSuite) TestLogoutWithoutCookiesStillSucceeds() {
	rec := s.do(http.MethodPost, "/auth/logout", nil)
	s.Equal(http.StatusOK, rec.Code)
}

func (s *HandlerSuite) registeredUserID(refresh *http.Cookie) uuid.UUID {
	claims, err := s.tokens.Validate(refresh.Value, token.TypeRefresh)
	s.Require().NoError(err)
	uid, err := claims.UserUUID()
	s.Require().NoError(err)
	return uid
}
