package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/briefdesk-backend/internal/service/identity"
)

type identityService interface {
	Sync(ctx context.Context) (*identity.SyncResult, error)
}

// MeHandler serves endpoints about the calling principal.
type MeHandler struct {
	svc identityService
	log *slog.Logger
}

// NewMeHandler creates a MeHandler.
func NewMeHandler(svc identityService, logger *slog.Logger) *MeHandler {
	return &MeHandler{svc: svc, log: logger.With("handler", "me")}
}

// Register mounts the routes on mux.
func (h *MeHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/me/sync", h.Sync)
}

// Sync handles POST /v1/me/sync. Clients call it after every login.
func (h *MeHandler) Sync(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Sync(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
