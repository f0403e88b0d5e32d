// Package handler exposes the authentication endpoints.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"resourcehub/internal/auth/cookies"
	"resourcehub/internal/auth/models"
	"resourcehub/internal/token"
	"resourcehub/pkg/platform/httputil"
)

// Service is the auth behaviour the handler depends on.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, *token.Pair, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.User, *token.Pair, error)
	GoogleLogin(ctx context.Context, rawToken string) (*models.User, *token.Pair, error)
	Logout(ctx context.Context, refreshToken string)
}

// Handler serves the /auth endpoints.
type Handler struct {
	svc        Service
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

// New constructs the auth handler. The TTLs become the session cookie max-ages.
func New(svc Service, accessTTL, refreshTTL time.Duration, logger *slog.Logger) *Handler {
	return &Handler{
		svc:        svc,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// RegisterRoutes mounts the auth endpoints. requireSession guards check-auth
// and performs the silent refresh before the handler runs.
func (h *Handler) RegisterRoutes(r chi.Router, requireSession func(http.Handler) http.Handler) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
	r.Post("/auth/google", h.googleLogin)
	r.Post("/auth/logout", h.logout)
	r.With(requireSession).Get("/auth/check-auth", h.checkAuth)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[models.RegisterRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	_, pair, err := h.svc.Register(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cookies.Set(w, pair, h.accessTTL, h.refreshTTL)
	httputil.WriteMessage(w, http.StatusCreated, "user registered successfully")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[models.LoginRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	_, pair, err := h.svc.Login(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cookies.Set(w, pair, h.accessTTL, h.refreshTTL)
	httputil.WriteMessage(w, http.StatusOK, "successfully logged in")
}

func (h *Handler) googleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[models.GoogleLoginRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	_, pair, err := h.svc.GoogleLogin(r.Context(), req.Token)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cookies.Set(w, pair, h.accessTTL, h.refreshTTL)
	httputil.WriteMessage(w, http.StatusOK, "successfully logged in")
}

// logout always answers 200: revocation is best-effort and the client clears
// its session either way.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	var refresh string
	if c, err := r.Cookie(cookies.RefreshCookie); err == nil {
		refresh = c.Value
	} else {
		h.logger.DebugContext(r.Context(), "logout without refresh cookie")
	}

	h.svc.Logout(r.Context(), refresh)

	cookies.Clear(w)
	httputil.WriteMessage(w, http.StatusOK, "successfully logged out")
}

// checkAuth reports session validity. The session middleware has already
// validated or silently refreshed the cookies by the time this runs.
func (h *Handler) checkAuth(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteMessage(w, http.StatusOK, "authenticated")
}
