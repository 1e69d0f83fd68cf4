package domain

import (
	"time"

	"github.com/google/uuid"
)

// Field limits for brief content.
const (
	MaxHeaderLength  = 200
	MaxContentLength = 10000
	MaxFooterLength  = 200
	MaxCommentLength = 1000
)

// Brief is a structured document owned by its creator and reviewed by recipients.
type Brief struct {
	ID              uuid.UUID
	OwnerID         uuid.UUID
	Header          string
	Content         string
	Footer          *string
	Status          BriefStatus
	StatusChangedAt *time.Time
	StatusChangedBy *uuid.UUID
	CommentCount    int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Snapshot returns an opaque representation of the brief for audit entries.
func (b *Brief) Snapshot() map[string]any {
	snap := map[string]any{
		"header":        b.Header,
		"content":       b.Content,
		"status":        b.Status.String(),
		"comment_count": b.CommentCount,
	}
	if b.Footer != nil {
		snap["footer"] = *b.Footer
	}
	return snap
}

// BriefContentParams holds a partial content update. Nil fields are left as is.
// Footer set to ptr("") clears the footer.
type BriefContentParams struct {
	Header  *string
	Content *string
	Footer  *string

	// ExpectedStatus, when non-empty, makes the update conditional on the
	// stored status so a concurrent transition is not silently overwritten.
	ExpectedStatus BriefStatus

	// ResetStatus, when set, is written together with the content and
	// stamps status_changed_at/by with ChangedBy.
	ResetStatus *BriefStatus
	ChangedBy   uuid.UUID
}

// IsEmpty reports whether no content field is set.
func (p BriefContentParams) IsEmpty() bool {
	return p.Header == nil && p.Content == nil && p.Footer == nil
}

// Recipient is a share record granting one email (and, once resolved, one
// identity) access to a brief. RecipientID is nil while the invitee has no account.
type Recipient struct {
	ID             uuid.UUID
	BriefID        uuid.UUID
	RecipientID    *uuid.UUID
	RecipientEmail string
	SharedBy       uuid.UUID
	SharedAt       time.Time
}

// IsPending reports whether the invitee has not registered yet.
func (r *Recipient) IsPending() bool {
	return r.RecipientID == nil
}

// Comment is an immutable remark on a brief.
type Comment struct {
	ID        uuid.UUID
	BriefID   uuid.UUID
	AuthorID  uuid.UUID
	Content   string
	CreatedAt time.Time
}
