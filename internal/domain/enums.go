package domain

// BriefStatus is the review state of a brief.
type BriefStatus string

const (
	BriefStatusDraft             BriefStatus = "draft"
	BriefStatusSent              BriefStatus = "sent"
	BriefStatusAccepted          BriefStatus = "accepted"
	BriefStatusRejected          BriefStatus = "rejected"
	BriefStatusNeedsModification BriefStatus = "needs_modification"
)

func (s BriefStatus) String() string { return string(s) }

func (s BriefStatus) IsValid() bool {
	switch s {
	case BriefStatusDraft, BriefStatusSent, BriefStatusAccepted,
		BriefStatusRejected, BriefStatusNeedsModification:
		return true
	}
	return false
}

// IsTerminal reports whether no transition may leave the status.
func (s BriefStatus) IsTerminal() bool {
	return s == BriefStatusAccepted
}

// Role is the capability class of an authenticated principal.
type Role string

const (
	RoleCreator Role = "creator"
	RoleClient  Role = "client"
)

func (r Role) String() string { return string(r) }

func (r Role) IsValid() bool {
	switch r {
	case RoleCreator, RoleClient:
		return true
	}
	return false
}

// CanCreateBriefs reports whether the role may author new briefs.
func (r Role) CanCreateBriefs() bool {
	return r == RoleCreator
}

// EntityType identifies the kind of entity an audit entry refers to.
type EntityType string

const (
	EntityTypeBrief   EntityType = "brief"
	EntityTypeProfile EntityType = "profile"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeBrief, EntityTypeProfile:
		return true
	}
	return false
}

// AuditAction is the tagged kind of a recorded mutation.
type AuditAction string

const (
	AuditActionBriefCreated        AuditAction = "brief_created"
	AuditActionBriefUpdated        AuditAction = "brief_updated"
	AuditActionBriefStatusChanged  AuditAction = "brief_status_changed"
	AuditActionBriefDeleted        AuditAction = "brief_deleted"
	AuditActionBriefShared         AuditAction = "brief_shared"
	AuditActionRecipientRevoked    AuditAction = "recipient_revoked"
	AuditActionCommentCreated      AuditAction = "comment_created"
	AuditActionCommentDeleted      AuditAction = "comment_deleted"
	AuditActionInvitationsResolved AuditAction = "invitations_resolved"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionBriefCreated, AuditActionBriefUpdated, AuditActionBriefStatusChanged,
		AuditActionBriefDeleted, AuditActionBriefShared, AuditActionRecipientRevoked,
		AuditActionCommentCreated, AuditActionCommentDeleted, AuditActionInvitationsResolved:
		return true
	}
	return false
}

// IsDestructive reports whether the action records an irreversible removal.
// Audit writes for these actions must succeed before the removal happens.
func (a AuditAction) IsDestructive() bool {
	switch a {
	case AuditActionBriefDeleted, AuditActionRecipientRevoked, AuditActionCommentDeleted:
		return true
	}
	return false
}

// BriefScope selects which briefs a listing returns relative to the caller.
type BriefScope string

const (
	BriefScopeAll    BriefScope = "all"
	BriefScopeOwned  BriefScope = "owned"
	BriefScopeShared BriefScope = "shared"
)

func (s BriefScope) IsValid() bool {
	switch s {
	case BriefScopeAll, BriefScopeOwned, BriefScopeShared:
		return true
	}
	return false
}
