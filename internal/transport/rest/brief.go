package rest

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
	"github.com/heartmarshall/briefdesk-backend/internal/service/brief"
)

type briefService interface {
	CreateBrief(ctx context.Context, input brief.CreateBriefInput) (*brief.BriefDetail, error)
	GetBrief(ctx context.Context, briefID uuid.UUID) (*brief.BriefDetail, error)
	ListBriefs(ctx context.Context, input brief.ListBriefsInput) (*brief.Page[brief.BriefSummary], error)
	UpdateBriefContent(ctx context.Context, input brief.UpdateBriefInput) (*brief.BriefDetail, error)
	ChangeBriefStatus(ctx context.Context, input brief.ChangeStatusInput) (*brief.StatusResult, error)
	DeleteBrief(ctx context.Context, briefID uuid.UUID) error
	GetBriefHistory(ctx context.Context, briefID uuid.UUID, limit int) ([]brief.HistoryEntry, error)
	ShareBrief(ctx context.Context, input brief.ShareInput) (*brief.RecipientRecord, error)
	RevokeRecipient(ctx context.Context, briefID, recipientRecordID uuid.UUID) error
	ListRecipients(ctx context.Context, briefID uuid.UUID) ([]brief.RecipientRecord, error)
	AddComment(ctx context.Context, input brief.AddCommentInput) (*brief.CommentRecord, error)
	DeleteComment(ctx context.Context, commentID uuid.UUID) error
	ListComments(ctx context.Context, briefID uuid.UUID) ([]*brief.CommentRecord, error)
}

// BriefHandler serves the brief REST endpoints.
type BriefHandler struct {
	svc     briefService
	maxBody int64
	log     *slog.Logger
}

// NewBriefHandler creates a BriefHandler. maxBody caps request bodies.
func NewBriefHandler(svc briefService, maxBody int64, logger *slog.Logger) *BriefHandler {
	return &BriefHandler{svc: svc, maxBody: maxBody, log: logger.With("handler", "brief")}
}

// Register mounts the brief routes on mux.
func (h *BriefHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/briefs", h.Create)
	mux.HandleFunc("GET /v1/briefs", h.List)
	mux.HandleFunc("GET /v1/briefs/{id}", h.Get)
	mux.HandleFunc("PATCH /v1/briefs/{id}", h.Update)
	mux.HandleFunc("DELETE /v1/briefs/{id}", h.Delete)
	mux.HandleFunc("POST /v1/briefs/{id}/status", h.ChangeStatus)
	mux.HandleFunc("GET /v1/briefs/{id}/history", h.History)
	mux.HandleFunc("GET /v1/briefs/{id}/recipients", h.ListRecipients)
	mux.HandleFunc("POST /v1/briefs/{id}/recipients", h.Share)
	mux.HandleFunc("DELETE /v1/briefs/{id}/recipients/{recipientId}", h.Revoke)
	mux.HandleFunc("GET /v1/briefs/{id}/comments", h.ListComments)
	mux.HandleFunc("POST /v1/briefs/{id}/comments", h.AddComment)
	mux.HandleFunc("DELETE /v1/comments/{id}", h.DeleteComment)
}

type createBriefRequest struct {
	Header  string  `json:"header"`
	Content string  `json:"content"`
	Footer  *string `json:"footer"`
}

// updateBriefRequest is a partial update. An empty footer clears it.
type updateBriefRequest struct {
	Header  *string `json:"header"`
	Content *string `json:"content"`
	Footer  *string `json:"footer"`
}

type changeStatusRequest struct {
	Status  domain.BriefStatus `json:"status"`
	Comment *string            `json:"comment"`
}

type shareRequest struct {
	Email string `json:"email"`
}

type commentRequest struct {
	Content string `json:"content"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
}

// Create handles POST /v1/briefs.
func (h *BriefHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBriefRequest
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	detail, err := h.svc.CreateBrief(r.Context(), brief.CreateBriefInput{
		Header:  req.Header,
		Content: req.Content,
		Footer:  req.Footer,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, detail)
}

// List handles GET /v1/briefs?filter=&status=&page=&limit=.
func (h *BriefHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := brief.ListBriefsInput{Scope: domain.BriefScope(q.Get("filter"))}
	if s := q.Get("status"); s != "" {
		status := domain.BriefStatus(s)
		input.Status = &status
	}

	var err error
	if input.Page, err = queryInt(r, "page"); err != nil {
		handleError(h.log, w, r, err)
		return
	}
	if input.Limit, err = queryInt(r, "limit"); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	page, err := h.svc.ListBriefs(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /v1/briefs/{id}.
func (h *BriefHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	detail, err := h.svc.GetBrief(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// Update handles PATCH /v1/briefs/{id}.
func (h *BriefHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req updateBriefRequest
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	detail, err := h.svc.UpdateBriefContent(r.Context(), brief.UpdateBriefInput{
		BriefID: id,
		Header:  req.Header,
		Content: req.Content,
		Footer:  req.Footer,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// Delete handles DELETE /v1/briefs/{id}.
func (h *BriefHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.DeleteBrief(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ChangeStatus handles POST /v1/briefs/{id}/status.
func (h *BriefHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req changeStatusRequest
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	result, err := h.svc.ChangeBriefStatus(r.Context(), brief.ChangeStatusInput{
		BriefID: id,
		Target:  req.Status,
		Comment: req.Comment,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// History handles GET /v1/briefs/{id}/history?limit=.
func (h *BriefHandler) History(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	entries, err := h.svc.GetBriefHistory(r.Context(), id, limit)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[brief.HistoryEntry]{Items: entries})
}

// ListRecipients handles GET /v1/briefs/{id}/recipients.
func (h *BriefHandler) ListRecipients(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	recipients, err := h.svc.ListRecipients(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[brief.RecipientRecord]{Items: recipients})
}

// Share handles POST /v1/briefs/{id}/recipients.
func (h *BriefHandler) Share(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req shareRequest
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	rec, err := h.svc.ShareBrief(r.Context(), brief.ShareInput{BriefID: id, Email: req.Email})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

// Revoke handles DELETE /v1/briefs/{id}/recipients/{recipientId}.
func (h *BriefHandler) Revoke(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	recipientID, err := pathUUID(r, "recipientId")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.RevokeRecipient(r.Context(), id, recipientID); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListComments handles GET /v1/briefs/{id}/comments.
func (h *BriefHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	comments, err := h.svc.ListComments(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, listResponse[*brief.CommentRecord]{Items: comments})
}

// AddComment handles POST /v1/briefs/{id}/comments.
func (h *BriefHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(w, r, h.maxBody, &req); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	comment, err := h.svc.AddComment(r.Context(), brief.AddCommentInput{BriefID: id, Content: req.Content})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, comment)
}

// DeleteComment handles DELETE /v1/comments/{id}.
func (h *BriefHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	if err := h.svc.DeleteComment(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
