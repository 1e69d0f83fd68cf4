package brief

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

// BriefDetail is the full view of a brief. Recipients are only filled in for the owner.
type BriefDetail struct {
	ID              uuid.UUID          `json:"id"`
	OwnerID         uuid.UUID          `json:"ownerId"`
	Header          string             `json:"header"`
	Content         string             `json:"content"`
	Footer          *string            `json:"footer,omitempty"`
	Status          domain.BriefStatus `json:"status"`
	StatusChangedAt *time.Time         `json:"statusChangedAt,omitempty"`
	StatusChangedBy *uuid.UUID         `json:"statusChangedBy,omitempty"`
	CommentCount    int                `json:"commentCount"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
	Access          string             `json:"access"`
	Recipients      []RecipientRecord  `json:"recipients,omitempty"`
}

// BriefSummary is the list view of a brief.
type BriefSummary struct {
	ID           uuid.UUID          `json:"id"`
	Header       string             `json:"header"`
	Status       domain.BriefStatus `json:"status"`
	CommentCount int                `json:"commentCount"`
	IsOwner      bool               `json:"isOwner"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// RecipientRecord is a share record. Pending is true until the invitee registers.
type RecipientRecord struct {
	ID          uuid.UUID  `json:"id"`
	BriefID     uuid.UUID  `json:"briefId"`
	RecipientID *uuid.UUID `json:"recipientId,omitempty"`
	Email       string     `json:"email"`
	Pending     bool       `json:"pending"`
	SharedBy    uuid.UUID  `json:"sharedBy"`
	SharedAt    time.Time  `json:"sharedAt"`
}

// CommentRecord is a comment as shown to brief participants.
type CommentRecord struct {
	ID        uuid.UUID `json:"id"`
	BriefID   uuid.UUID `json:"briefId"`
	AuthorID  uuid.UUID `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// StatusResult reports a completed status change.
type StatusResult struct {
	BriefID        uuid.UUID          `json:"briefId"`
	PreviousStatus domain.BriefStatus `json:"previousStatus"`
	Status         domain.BriefStatus `json:"status"`
	ChangedAt      *time.Time         `json:"changedAt,omitempty"`
	CommentCount   int                `json:"commentCount"`
	Comment        *CommentRecord     `json:"comment,omitempty"`
}

// HistoryEntry is one audit trail item of a brief.
type HistoryEntry struct {
	ID        uuid.UUID          `json:"id"`
	ActorID   uuid.UUID          `json:"actorId"`
	Action    domain.AuditAction `json:"action"`
	OldData   map[string]any     `json:"oldData,omitempty"`
	NewData   map[string]any     `json:"newData,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

func toDetail(b *domain.Brief, actor Actor, recipients []*domain.Recipient) *BriefDetail {
	d := &BriefDetail{
		ID:              b.ID,
		OwnerID:         b.OwnerID,
		Header:          b.Header,
		Content:         b.Content,
		Footer:          b.Footer,
		Status:          b.Status,
		StatusChangedAt: b.StatusChangedAt,
		StatusChangedBy: b.StatusChangedBy,
		CommentCount:    b.CommentCount,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
		Access:          actor.Role.String(),
	}
	if actor.IsOwner() {
		d.Recipients = toRecipientRecords(recipients)
	}
	return d
}

func toSummary(b *domain.Brief, principalID uuid.UUID) BriefSummary {
	return BriefSummary{
		ID:           b.ID,
		Header:       b.Header,
		Status:       b.Status,
		CommentCount: b.CommentCount,
		IsOwner:      b.OwnerID == principalID,
		UpdatedAt:    b.UpdatedAt,
	}
}

func toRecipientRecord(r *domain.Recipient) RecipientRecord {
	return RecipientRecord{
		ID:          r.ID,
		BriefID:     r.BriefID,
		RecipientID: r.RecipientID,
		Email:       r.RecipientEmail,
		Pending:     r.IsPending(),
		SharedBy:    r.SharedBy,
		SharedAt:    r.SharedAt,
	}
}

func toRecipientRecords(rs []*domain.Recipient) []RecipientRecord {
	out := make([]RecipientRecord, len(rs))
	for i, r := range rs {
		out[i] = toRecipientRecord(r)
	}
	return out
}

func toCommentRecord(c *domain.Comment) *CommentRecord {
	return &CommentRecord{
		ID:        c.ID,
		BriefID:   c.BriefID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
	}
}

func toHistoryEntry(e domain.AuditEntry) HistoryEntry {
	return HistoryEntry{
		ID:        e.ID,
		ActorID:   e.ActorID,
		Action:    e.Action,
		OldData:   e.OldData,
		NewData:   e.NewData,
		CreatedAt: e.CreatedAt,
	}
}
