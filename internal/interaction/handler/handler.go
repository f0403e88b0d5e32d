// Package handler exposes the authenticated interaction endpoints.
package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	catalogmodels "resourcehub/internal/catalog/models"
	"resourcehub/internal/interaction/models"
	"resourcehub/internal/interaction/service"
	dErrors "resourcehub/pkg/domain-errors"
	"resourcehub/pkg/platform/httputil"
	"resourcehub/pkg/requestcontext"
)

// Service is the interaction behaviour the handler depends on.
type Service interface {
	Save(ctx context.Context, userID uuid.UUID, resourceID int64) error
	Unsave(ctx context.Context, userID uuid.UUID, resourceID int64) error
	ListSaved(ctx context.Context, userID uuid.UUID) ([]catalogmodels.Resource, error)
	Rate(ctx context.Context, userID uuid.UUID, resourceID int64, req models.RateRequest) (service.RateOutcome, error)
}

// Handler serves the interaction endpoints.
type Handler struct {
	svc Service
}

// New constructs the interaction handler.
func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the interaction endpoints behind the session gate.
// Save and unsave accept both GET and POST, matching the frontend's historical
// use of plain links for these actions.
func (h *Handler) RegisterRoutes(r chi.Router, requireSession func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requireSession)
		r.Get("/resource/save/{id}", h.save)
		r.Post("/resource/save/{id}", h.save)
		r.Get("/resource/unsave/{id}", h.unsave)
		r.Post("/resource/unsave/{id}", h.unsave)
		r.Get("/resources/saved", h.listSaved)
		r.Post("/resource/rate/{id}", h.rate)
	})
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	resourceID, err := resourceID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.svc.Save(r.Context(), requestcontext.UserID(r.Context()), resourceID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "resource saved")
}

func (h *Handler) unsave(w http.ResponseWriter, r *http.Request) {
	resourceID, err := resourceID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.svc.Unsave(r.Context(), requestcontext.UserID(r.Context()), resourceID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "resource unsaved")
}

func (h *Handler) listSaved(w http.ResponseWriter, r *http.Request) {
	resources, err := h.svc.ListSaved(r.Context(), requestcontext.UserID(r.Context()))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if resources == nil {
		resources = []catalogmodels.Resource{}
	}
	httputil.WriteJSON(w, http.StatusOK, resources)
}

func (h *Handler) rate(w http.ResponseWriter, r *http.Request) {
	resourceID, err := resourceID(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, err := httputil.Decode[models.RateRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	outcome, err := h.svc.Rate(r.Context(), requestcontext.UserID(r.Context()), resourceID, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "rating "+string(outcome))
}

func resourceID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, dErrors.New(dErrors.CodeBadRequest, "invalid resource id")
	}
	return id, nil
}
