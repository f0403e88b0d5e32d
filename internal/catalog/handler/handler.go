// Package handler exposes the catalog read endpoints.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"resourcehub/internal/catalog/models"
	"resourcehub/pkg/platform/httputil"
)

// Service is the catalog behaviour the handler depends on.
type Service interface {
	ListResources(ctx context.Context) ([]models.Resource, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
}

// Handler serves the catalog endpoints.
type Handler struct {
	svc Service
}

// New constructs the catalog handler.
func New(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the catalog endpoints. Both are public reads.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/resources", h.listResources)
	r.Get("/tags", h.listTags)
}

func (h *Handler) listResources(w http.ResponseWriter, r *http.Request) {
	resources, err := h.svc.ListResources(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if resources == nil {
		resources = []models.Resource{}
	}
	httputil.WriteJSON(w, http.StatusOK, resources)
}

func (h *Handler) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.svc.ListTags(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	httputil.WriteJSON(w, http.StatusOK, tags)
}
