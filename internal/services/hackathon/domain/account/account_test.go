package account

import (
	"encoding/json"
	"strings"
	"testing"

	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

func hasCode(issues []verdict.Issue, code apperrors.Code) bool {
	for _, issue := range issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}

func TestValidateUserDeletionOwnedEvents(t *testing.T) {
	got := ValidateUserDeletion(DeletionContext{UserID: "u1", OwnedEvents: 1})
	if got.CanDelete {
		t.Fatal("expected deletion to be blocked")
	}
	if len(got.Blockers) != 1 || got.Blockers[0].Message != "Account owns 1 event(s)" {
		t.Fatalf("blockers = %+v", got.Blockers)
	}
	found := false
	for _, suggestion := range got.Suggestions {
		if strings.Contains(strings.ToLower(suggestion), "transfer ownership") {
			found = true
		}
	}
	if !found {
		t.Fatalf("suggestions = %v", got.Suggestions)
	}
}

func TestValidateUserDeletion(t *testing.T) {
	tests := []struct {
		name     string
		ctx      DeletionContext
		blockers []apperrors.Code
		warnings []apperrors.Code
	}{
		{name: "clean account", ctx: DeletionContext{UserID: "u1", Roles: Roles{RoleParticipant}}},
		{
			name:     "team leader",
			ctx:      DeletionContext{UserID: "u1", ActiveTeamLeaderships: 2},
			blockers: []apperrors.Code{apperrors.CodeAccountLeadsTeam},
		},
		{
			name:     "admin",
			ctx:      DeletionContext{UserID: "u1", Roles: Roles{RoleOrganizer, RoleAdmin}},
			blockers: []apperrors.Code{apperrors.CodeAccountIsAdmin},
		},
		{
			name:     "organizer duties",
			ctx:      DeletionContext{UserID: "u1", PendingOrganizerResponsibilities: 3},
			blockers: []apperrors.Code{apperrors.CodeAccountOrganizerDuties},
		},
		{
			name: "soft cleanup only",
			ctx: DeletionContext{
				UserID:              "u1",
				ActiveRegistrations: 2,
				SubmittedProjects:   1,
				JudgeAssignments:    4,
				CoOrganizerRoles:    1,
			},
			warnings: []apperrors.Code{
				apperrors.CodeAccountRegistrationsCancel,
				apperrors.CodeAccountSubmissionsAnon,
				apperrors.CodeAccountJudgeRemoved,
				apperrors.CodeAccountCoOrganizerRemoved,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateUserDeletion(tt.ctx)
			if got.CanDelete != (len(tt.blockers) == 0) {
				t.Fatalf("can delete = %v, blockers = %+v", got.CanDelete, got.Blockers)
			}
			if len(got.Blockers) != len(tt.blockers) {
				t.Fatalf("blockers = %+v", got.Blockers)
			}
			for _, code := range tt.blockers {
				if !hasCode(got.Blockers, code) {
					t.Fatalf("missing blocker %s in %+v", code, got.Blockers)
				}
			}
			if len(got.Suggestions) != len(tt.blockers) {
				t.Fatalf("suggestions = %v", got.Suggestions)
			}
			if len(got.Warnings) != len(tt.warnings) {
				t.Fatalf("warnings = %+v", got.Warnings)
			}
			for _, code := range tt.warnings {
				if !hasCode(got.Warnings, code) {
					t.Fatalf("missing warning %s in %+v", code, got.Warnings)
				}
			}
		})
	}
}

func TestGenerateDeletionPlan(t *testing.T) {
	ctx := DeletionContext{UserID: "u1", ActiveRegistrations: 2, SubmittedProjects: 1}
	plan := GenerateDeletionPlan(ctx, ValidateUserDeletion(ctx))
	if !plan.Ready {
		t.Fatal("expected plan to be ready")
	}
	want := []Action{ActionCancelRegistrations, ActionAnonymizeSubmissions, ActionRevokeSessions, ActionDeleteAccount}
	if len(plan.Steps) != len(want) {
		t.Fatalf("steps = %+v", plan.Steps)
	}
	for i, step := range plan.Steps {
		if step.Action != want[i] || step.Order != i+1 {
			t.Fatalf("step %d = %+v, want %s", i, step, want[i])
		}
	}
	if plan.Steps[0].Count != 2 {
		t.Fatalf("registration count = %d", plan.Steps[0].Count)
	}

	blocked := DeletionContext{UserID: "u1", OwnedEvents: 2, Roles: Roles{RoleAdmin}, ActiveRegistrations: 1}
	plan = GenerateDeletionPlan(blocked, ValidateUserDeletion(blocked))
	if plan.Ready {
		t.Fatal("expected blocked plan")
	}
	if len(plan.Steps) != 2 || plan.Steps[0].Action != ActionTransferOwnership || plan.Steps[1].Action != ActionRevokeAdmin {
		t.Fatalf("steps = %+v", plan.Steps)
	}
	if plan.Steps[0].Count != 2 {
		t.Fatalf("owned events count = %d", plan.Steps[0].Count)
	}
}

func TestValidateOrganizerRoleRevocation(t *testing.T) {
	admin := Roles{RoleAdmin}
	tests := []struct {
		name    string
		r       Revocation
		allowed bool
		blocker apperrors.Code
		warning apperrors.Code
	}{
		{
			name:    "plain organizer",
			r:       Revocation{ActorID: "a", ActorRoles: admin, TargetID: "o", TargetRoles: Roles{RoleOrganizer}},
			allowed: true,
		},
		{
			name:    "actor not admin",
			r:       Revocation{ActorID: "a", ActorRoles: Roles{RoleOrganizer}, TargetID: "o", TargetRoles: Roles{RoleOrganizer}},
			blocker: apperrors.CodeRoleRevokeForbidden,
		},
		{
			name:    "target lacks role",
			r:       Revocation{ActorID: "a", ActorRoles: admin, TargetID: "o", TargetRoles: Roles{RoleJudge}},
			blocker: apperrors.CodeRoleTargetMismatch,
		},
		{
			name:    "owns events",
			r:       Revocation{ActorID: "a", ActorRoles: admin, TargetID: "o", TargetRoles: Roles{RoleOrganizer}, OwnedEvents: 1},
			blocker: apperrors.CodeRoleOwnsEvents,
		},
		{
			name:    "co-organizer access",
			r:       Revocation{ActorID: "a", ActorRoles: admin, TargetID: "o", TargetRoles: Roles{RoleOrganizer}, CoOrganizedEvents: 2},
			allowed: true,
			warning: apperrors.CodeRoleCoOrganizer,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateOrganizerRoleRevocation(tt.r)
			checkDecision(t, got, tt.allowed, tt.blocker, tt.warning)
		})
	}
}

func TestValidateAdminRoleRevocation(t *testing.T) {
	admin := Roles{RoleAdmin}
	tests := []struct {
		name    string
		r       Revocation
		allowed bool
		blocker apperrors.Code
		warning apperrors.Code
	}{
		{
			name:    "other admin",
			r:       Revocation{ActorID: "a", ActorRoles: admin, TargetID: "b", TargetRoles: admin, AdminCount: 3},
			allowed: true,
		},
		{
			name:    "self",
			r:       Revocation{ActorID: "a", ActorRoles: admin, TargetID: "a", TargetRoles: admin, AdminCount: 3},
			blocker: apperrors.CodeRoleRevokeSelf,
		},
		{
			name:    "last admin",
			r:       Revocation{ActorID: "a", ActorRoles: admin, TargetID: "b", TargetRoles: admin, AdminCount: 1},
			allowed: true,
			warning: apperrors.CodeRoleLastAdmin,
		},
		{
			name:    "target not admin",
			r:       Revocation{ActorID: "a", ActorRoles: admin, TargetID: "b", TargetRoles: Roles{RoleOrganizer}, AdminCount: 2},
			blocker: apperrors.CodeRoleTargetMismatch,
		},
		{
			name:    "actor not admin",
			r:       Revocation{ActorID: "x", TargetID: "b", TargetRoles: admin, AdminCount: 2},
			blocker: apperrors.CodeRoleRevokeForbidden,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateAdminRoleRevocation(tt.r)
			checkDecision(t, got, tt.allowed, tt.blocker, tt.warning)
		})
	}
}

func TestValidateOwnershipTransfer(t *testing.T) {
	organizer := Roles{RoleOrganizer}
	tests := []struct {
		name    string
		t       OwnershipTransfer
		allowed bool
		blocker apperrors.Code
	}{
		{
			name:    "owner to organizer",
			t:       OwnershipTransfer{ActorID: "o", ActorRoles: organizer, CurrentOwnerID: "o", RecipientID: "r", RecipientRoles: organizer},
			allowed: true,
		},
		{
			name:    "admin to admin",
			t:       OwnershipTransfer{ActorID: "a", ActorRoles: Roles{RoleAdmin}, CurrentOwnerID: "o", RecipientID: "r", RecipientRoles: Roles{RoleAdmin}},
			allowed: true,
		},
		{
			name:    "stranger",
			t:       OwnershipTransfer{ActorID: "x", ActorRoles: organizer, CurrentOwnerID: "o", RecipientID: "r", RecipientRoles: organizer},
			blocker: apperrors.CodeOwnershipForbidden,
		},
		{
			name:    "recipient without role",
			t:       OwnershipTransfer{ActorID: "o", CurrentOwnerID: "o", RecipientID: "r", RecipientRoles: Roles{RoleParticipant}},
			blocker: apperrors.CodeOwnershipRecipientRole,
		},
		{
			name:    "same owner",
			t:       OwnershipTransfer{ActorID: "o", CurrentOwnerID: "o", RecipientID: "o", RecipientRoles: organizer},
			blocker: apperrors.CodeOwnershipSameOwner,
		},
		{
			name:    "missing recipient",
			t:       OwnershipTransfer{ActorID: "o", CurrentOwnerID: "o"},
			blocker: apperrors.CodeOwnershipRecipientMissing,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateOwnershipTransfer(tt.t)
			checkDecision(t, got, tt.allowed, tt.blocker, "")
		})
	}
}

func TestDecisionLocalize(t *testing.T) {
	got := ValidateUserDeletion(DeletionContext{UserID: "u1", OwnedEvents: 2}).Localize("pt-BR")
	if got.Blockers[0].Message != "A conta é dona de 2 evento(s)" {
		t.Fatalf("message = %q", got.Blockers[0].Message)
	}
	v := got.Verdict()
	if v.IsValid() || !v.HasError(apperrors.CodeAccountOwnsEvents) {
		t.Fatalf("verdict = %+v", v)
	}
}

func TestNormalizeRole(t *testing.T) {
	if role, ok := NormalizeRole(" Admin "); !ok || role != RoleAdmin {
		t.Fatalf("role = %q, %v", role, ok)
	}
	if _, ok := NormalizeRole("owner"); ok {
		t.Fatal("expected unknown role to be rejected")
	}
}

func TestDeletionContextDecodesRoles(t *testing.T) {
	var ctx DeletionContext
	if err := json.Unmarshal([]byte(`{"user_id":"u1","roles":["Admin"," organizer "]}`), &ctx); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !ctx.Roles.Has(RoleAdmin) || !ctx.Roles.Has(RoleOrganizer) {
		t.Fatalf("roles = %v", ctx.Roles)
	}
	if got := ValidateUserDeletion(ctx); got.CanDelete || !hasCode(got.Blockers, apperrors.CodeAccountIsAdmin) {
		t.Fatalf("blockers = %+v", got.Blockers)
	}
	if err := json.Unmarshal([]byte(`{"roles":["owner"]}`), &ctx); err == nil {
		t.Fatal("expected unknown role to be rejected")
	}
}

func checkDecision(t *testing.T, got Decision, allowed bool, blocker, warning apperrors.Code) {
	t.Helper()
	if got.Allowed() != allowed {
		t.Fatalf("allowed = %v, blockers = %+v", got.Allowed(), got.Blockers)
	}
	if blocker != "" && !hasCode(got.Blockers, blocker) {
		t.Fatalf("blockers = %+v, want %s", got.Blockers, blocker)
	}
	if warning != "" && !hasCode(got.Warnings, warning) {
		t.Fatalf("warnings = %+v, want %s", got.Warnings, warning)
	}
	if warning == "" && len(got.Warnings) > 0 {
		t.Fatalf("unexpected warnings %+v", got.Warnings)
	}
}
