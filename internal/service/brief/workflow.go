package brief

import (
	"fmt"

	"github.com/heartmarshall/briefdesk-backend/internal/domain"
)

// trigger is an event that may move a brief to another status.
type trigger string

const (
	triggerShare                trigger = "share"
	triggerAccept               trigger = "accept"
	triggerReject               trigger = "reject"
	triggerRequestModification  trigger = "request_modification"
	triggerOwnerEdit            trigger = "owner_edit"
	triggerLastRecipientRevoked trigger = "last_recipient_revoked"
)

// reviewTriggers maps the statuses a recipient may ask for to their trigger.
var reviewTriggers = map[domain.BriefStatus]trigger{
	domain.BriefStatusAccepted:          triggerAccept,
	domain.BriefStatusRejected:          triggerReject,
	domain.BriefStatusNeedsModification: triggerRequestModification,
}

// nextStatus is the brief state machine. It returns the status after t is
// applied to current by an actor of the given role. A result equal to
// current means the trigger has no effect. Illegal moves fail with
// domain.ErrForbidden.
func nextStatus(current domain.BriefStatus, t trigger, by ActorRole) (domain.BriefStatus, error) {
	switch t {
	case triggerShare:
		if current == domain.BriefStatusDraft {
			return domain.BriefStatusSent, nil
		}
		return current, nil

	case triggerLastRecipientRevoked:
		if current.IsTerminal() {
			return current, nil
		}
		return domain.BriefStatusDraft, nil

	case triggerOwnerEdit:
		if by != ActorOwner {
			return current, forbidden("only the owner can edit a brief")
		}
		if current.IsTerminal() {
			return current, forbidden("brief is %s and can no longer change", current)
		}
		return domain.BriefStatusDraft, nil

	case triggerAccept, triggerReject, triggerRequestModification:
		if current.IsTerminal() {
			return current, forbidden("brief is %s and can no longer change", current)
		}
		if by != ActorRecipient {
			return current, forbidden("only a recipient can %s a brief", t)
		}
		if current != domain.BriefStatusSent {
			return current, forbidden("brief must be sent to %s, it is %s", t, current)
		}
		switch t {
		case triggerAccept:
			return domain.BriefStatusAccepted, nil
		case triggerReject:
			return domain.BriefStatusRejected, nil
		default:
			return domain.BriefStatusNeedsModification, nil
		}
	}

	return current, fmt.Errorf("unknown trigger %q", t)
}

func forbidden(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), domain.ErrForbidden)
}
