package account

import (
	"strconv"

	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

// DeletionContext is a snapshot of everything tied to the account being
// deleted. Counts are supplied by the caller.
type DeletionContext struct {
	UserID                           string `json:"user_id"`
	Roles                            Roles  `json:"roles"`
	OwnedEvents                      int    `json:"owned_events"`
	ActiveTeamLeaderships            int    `json:"active_team_leaderships"`
	PendingOrganizerResponsibilities int    `json:"pending_organizer_responsibilities"`
	ActiveRegistrations              int    `json:"active_registrations"`
	SubmittedProjects                int    `json:"submitted_projects"`
	JudgeAssignments                 int    `json:"judge_assignments"`
	CoOrganizerRoles                 int    `json:"co_organizer_roles"`
}

// Action names one step of a deletion plan.
type Action string

const (
	ActionTransferOwnership      Action = "transfer_event_ownership"
	ActionTransferLeadership     Action = "transfer_team_leadership"
	ActionRevokeAdmin            Action = "revoke_admin_role"
	ActionResolveOrganizerDuties Action = "resolve_organizer_duties"
	ActionCancelRegistrations    Action = "cancel_registrations"
	ActionAnonymizeSubmissions   Action = "anonymize_submissions"
	ActionRemoveJudgeAssignments Action = "remove_judge_assignments"
	ActionRemoveCoOrganizerRoles Action = "remove_co_organizer_roles"
	ActionRevokeSessions         Action = "revoke_sessions"
	ActionDeleteAccount          Action = "delete_account"
)

// Step is one ordered instruction for the layer that performs the deletion.
type Step struct {
	Order       int    `json:"order"`
	Action      Action `json:"action"`
	Description string `json:"description"`
	Count       int    `json:"count,omitempty"`
}

// Plan lists the steps to run. When Ready is false the steps are the
// prerequisites the user must complete first.
type Plan struct {
	Ready bool   `json:"ready"`
	Steps []Step `json:"steps"`
}

type blockerRule struct {
	code       apperrors.Code
	action     Action
	count      func(DeletionContext) int
	message    func(count string) string
	suggestion string
}

var blockerRules = []blockerRule{
	{
		code:       apperrors.CodeAccountOwnsEvents,
		action:     ActionTransferOwnership,
		count:      func(c DeletionContext) int { return c.OwnedEvents },
		message:    func(n string) string { return "Account owns " + n + " event(s)" },
		suggestion: "Transfer ownership of your events to another organizer first",
	},
	{
		code:       apperrors.CodeAccountLeadsTeam,
		action:     ActionTransferLeadership,
		count:      func(c DeletionContext) int { return c.ActiveTeamLeaderships },
		message:    func(n string) string { return "Account leads " + n + " active team(s)" },
		suggestion: "Transfer team leadership to another member or disband your teams first",
	},
	{
		code:   apperrors.CodeAccountIsAdmin,
		action: ActionRevokeAdmin,
		count: func(c DeletionContext) int {
			if c.Roles.Has(RoleAdmin) {
				return 1
			}
			return 0
		},
		message:    func(string) string { return "Administrator accounts cannot be deleted" },
		suggestion: "Ask another administrator to revoke your admin role first",
	},
	{
		code:       apperrors.CodeAccountOrganizerDuties,
		action:     ActionResolveOrganizerDuties,
		count:      func(c DeletionContext) int { return c.PendingOrganizerResponsibilities },
		message:    func(n string) string { return "Account has " + n + " unresolved organizer responsibilities" },
		suggestion: "Resolve or hand over your pending organizer responsibilities first",
	},
}

type cleanupRule struct {
	code        apperrors.Code
	action      Action
	count       func(DeletionContext) int
	message     func(count string) string
	description string
}

var cleanupRules = []cleanupRule{
	{
		code:        apperrors.CodeAccountRegistrationsCancel,
		action:      ActionCancelRegistrations,
		count:       func(c DeletionContext) int { return c.ActiveRegistrations },
		message:     func(n string) string { return n + " active registration(s) will be cancelled" },
		description: "Cancel active event registrations",
	},
	{
		code:        apperrors.CodeAccountSubmissionsAnon,
		action:      ActionAnonymizeSubmissions,
		count:       func(c DeletionContext) int { return c.SubmittedProjects },
		message:     func(n string) string { return n + " submitted project(s) will be anonymized" },
		description: "Anonymize submitted projects and keep them for judging history",
	},
	{
		code:        apperrors.CodeAccountJudgeRemoved,
		action:      ActionRemoveJudgeAssignments,
		count:       func(c DeletionContext) int { return c.JudgeAssignments },
		message:     func(n string) string { return n + " judge assignment(s) will be removed" },
		description: "Remove judge assignments",
	},
	{
		code:        apperrors.CodeAccountCoOrganizerRemoved,
		action:      ActionRemoveCoOrganizerRoles,
		count:       func(c DeletionContext) int { return c.CoOrganizerRoles },
		message:     func(n string) string { return n + " co-organizer role(s) will be removed" },
		description: "Remove co-organizer roles",
	},
}

// ValidateUserDeletion decides whether an account can be deleted now.
func ValidateUserDeletion(ctx DeletionContext) Decision {
	decision := newDecision()
	for _, rule := range blockerRules {
		count := rule.count(ctx)
		if count <= 0 {
			continue
		}
		n := strconv.Itoa(count)
		decision.block(verdict.Issue{
			Code:     rule.code,
			Message:  rule.message(n),
			Metadata: map[string]string{"Count": n},
		}, rule.suggestion)
	}
	for _, rule := range cleanupRules {
		count := rule.count(ctx)
		if count <= 0 {
			continue
		}
		n := strconv.Itoa(count)
		decision.warn(verdict.Issue{
			Code:     rule.code,
			Message:  rule.message(n),
			Metadata: map[string]string{"Count": n},
		})
	}
	return decision.finish()
}

// GenerateDeletionPlan turns a decision into ordered steps. A blocked
// decision yields the prerequisite actions in blocker order. An allowed one
// yields the cleanup steps, ending with the account removal itself.
func GenerateDeletionPlan(ctx DeletionContext, decision Decision) Plan {
	if !decision.Allowed() {
		plan := Plan{Steps: []Step{}}
		blocked := make(map[apperrors.Code]bool, len(decision.Blockers))
		for _, issue := range decision.Blockers {
			blocked[issue.Code] = true
		}
		for _, rule := range blockerRules {
			if !blocked[rule.code] {
				continue
			}
			plan.Steps = append(plan.Steps, Step{
				Order:       len(plan.Steps) + 1,
				Action:      rule.action,
				Description: rule.suggestion,
				Count:       rule.count(ctx),
			})
		}
		return plan
	}

	plan := Plan{Ready: true, Steps: []Step{}}
	for _, rule := range cleanupRules {
		count := rule.count(ctx)
		if count <= 0 {
			continue
		}
		plan.Steps = append(plan.Steps, Step{
			Order:       len(plan.Steps) + 1,
			Action:      rule.action,
			Description: rule.description,
			Count:       count,
		})
	}
	plan.Steps = append(plan.Steps,
		Step{Order: len(plan.Steps) + 1, Action: ActionRevokeSessions, Description: "Revoke sessions and sign-in credentials"},
		Step{Order: len(plan.Steps) + 2, Action: ActionDeleteAccount, Description: "Delete the account"},
	)
	return plan
}
