package sync

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"resourcehub/internal/audit"
	"resourcehub/pkg/platform/httputil"
	"resourcehub/pkg/requestcontext"
)

// Runner is the reconciler behaviour the handler depends on.
type Runner interface {
	Run(ctx context.Context) error
	Apply(ctx context.Context, tags []TagRecord, resources []ResourceRecord) error
}

// AuditPublisher records audit events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// UploadRequest is the POST /upload-data body: an inline feed payload.
type UploadRequest struct {
	Tags      []TagRecord      `json:"tags"`
	Resources []ResourceRecord `json:"resources"`
}

// Handler exposes the sync trigger and the inline upload endpoint.
type Handler struct {
	runner Runner
	audit  AuditPublisher
	logger *slog.Logger
}

// NewHandler constructs the sync handler.
func NewHandler(runner Runner, auditPublisher AuditPublisher, logger *slog.Logger) *Handler {
	return &Handler{runner: runner, audit: auditPublisher, logger: logger}
}

// RegisterRoutes mounts the sync endpoints. Both are trigger endpoints for the
// external scheduler, not user-facing.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/sync", h.runSync)
	r.Post("/upload-data", h.uploadData)
}

func (h *Handler) runSync(w http.ResponseWriter, r *http.Request) {
	err := h.runner.Run(r.Context())
	h.emit(r.Context(), audit.ActionSyncRun, err)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "sync run failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "sync completed")
}

func (h *Handler) uploadData(w http.ResponseWriter, r *http.Request) {
	req, err := httputil.Decode[UploadRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	err = h.runner.Apply(r.Context(), req.Tags, req.Resources)
	h.emit(r.Context(), audit.ActionUploadData, err)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "upload apply failed", "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteMessage(w, http.StatusOK, "upload completed")
}

func (h *Handler) emit(ctx context.Context, action audit.Action, runErr error) {
	outcome := audit.OutcomeSuccess
	detail := ""
	if runErr != nil {
		outcome = audit.OutcomeFailure
		detail = runErr.Error()
	}
	event := audit.Event{
		Action:    action,
		Outcome:   outcome,
		Detail:    detail,
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
	}
	if err := h.audit.Emit(ctx, event); err != nil {
		h.logger.WarnContext(ctx, "failed to emit audit event", "error", err, "action", action)
	}
}
