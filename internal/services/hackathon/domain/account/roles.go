package account

import (
	"strconv"

	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

// Revocation describes an administrator removing a role from a user.
type Revocation struct {
	ActorID           string `json:"actor_id"`
	ActorRoles        Roles  `json:"actor_roles"`
	TargetID          string `json:"target_id"`
	TargetRoles       Roles  `json:"target_roles"`
	OwnedEvents       int    `json:"owned_events"`
	CoOrganizedEvents int    `json:"co_organized_events"`
	// AdminCount is the number of administrators including the target.
	AdminCount int `json:"admin_count"`
}

// OwnershipTransfer describes handing an event to a new owner.
type OwnershipTransfer struct {
	ActorID        string `json:"actor_id"`
	ActorRoles     Roles  `json:"actor_roles"`
	CurrentOwnerID string `json:"current_owner_id"`
	RecipientID    string `json:"recipient_id"`
	RecipientRoles Roles  `json:"recipient_roles"`
}

// ValidateOrganizerRoleRevocation blocks while the organizer still owns
// events and warns about co-organizer access that will be lost.
func ValidateOrganizerRoleRevocation(r Revocation) Decision {
	decision := newDecision()
	if !checkRevocationTarget(&decision, r, RoleOrganizer) {
		return decision.finish()
	}
	if r.OwnedEvents > 0 {
		n := strconv.Itoa(r.OwnedEvents)
		decision.block(verdict.Issue{
			Code:     apperrors.CodeRoleOwnsEvents,
			Message:  "Organizer owns " + n + " event(s)",
			Metadata: map[string]string{"Count": n},
		}, "Transfer ownership of the organizer's events before revoking the role")
	}
	if r.CoOrganizedEvents > 0 {
		n := strconv.Itoa(r.CoOrganizedEvents)
		decision.warn(verdict.Issue{
			Code:     apperrors.CodeRoleCoOrganizer,
			Message:  "Organizer co-organizes " + n + " event(s) and will lose access",
			Metadata: map[string]string{"Count": n},
		})
	}
	return decision.finish()
}

// ValidateAdminRoleRevocation never lets administrators demote themselves
// and warns when the target is the last administrator.
func ValidateAdminRoleRevocation(r Revocation) Decision {
	decision := newDecision()
	if !checkRevocationTarget(&decision, r, RoleAdmin) {
		return decision.finish()
	}
	if r.ActorID != "" && r.ActorID == r.TargetID {
		decision.block(verdict.Issue{
			Code:    apperrors.CodeRoleRevokeSelf,
			Message: "Administrators cannot revoke their own admin role",
		}, "Ask another administrator to revoke the role")
	}
	if r.AdminCount <= 1 {
		decision.warn(verdict.Issue{
			Code:    apperrors.CodeRoleLastAdmin,
			Message: "This is the last remaining administrator",
		})
	}
	return decision.finish()
}

// ValidateOwnershipTransfer allows the current owner or an administrator to
// hand an event to an organizer or administrator.
func ValidateOwnershipTransfer(t OwnershipTransfer) Decision {
	decision := newDecision()
	if t.RecipientID == "" {
		decision.block(verdict.Issue{
			Code:    apperrors.CodeOwnershipRecipientMissing,
			Field:   "recipient_id",
			Message: "Recipient is required",
		}, "")
		return decision.finish()
	}
	if t.ActorID != t.CurrentOwnerID && !t.ActorRoles.Has(RoleAdmin) {
		decision.block(verdict.Issue{
			Code:    apperrors.CodeOwnershipForbidden,
			Message: "Only the current owner or an administrator can transfer ownership",
		}, "")
	}
	if t.RecipientID == t.CurrentOwnerID {
		decision.block(verdict.Issue{
			Code:    apperrors.CodeOwnershipSameOwner,
			Field:   "recipient_id",
			Message: "Recipient already owns this event",
		}, "")
	}
	if !t.RecipientRoles.Has(RoleOrganizer) && !t.RecipientRoles.Has(RoleAdmin) {
		decision.block(verdict.Issue{
			Code:    apperrors.CodeOwnershipRecipientRole,
			Field:   "recipient_id",
			Message: "Recipient must be an organizer or administrator",
		}, "Grant the recipient the organizer role first")
	}
	return decision.finish()
}

func checkRevocationTarget(decision *Decision, r Revocation, role Role) bool {
	if !r.ActorRoles.Has(RoleAdmin) {
		decision.block(verdict.Issue{
			Code:    apperrors.CodeRoleRevokeForbidden,
			Message: "Only administrators can revoke roles",
		}, "")
		return false
	}
	if !r.TargetRoles.Has(role) {
		decision.block(verdict.Issue{
			Code:     apperrors.CodeRoleTargetMismatch,
			Field:    "target_id",
			Message:  "User does not hold the " + string(role) + " role",
			Metadata: map[string]string{"Role": string(role)},
		}, "")
		return false
	}
	return true
}
