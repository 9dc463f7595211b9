package team

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/phase"
)

func sampleTeam() Team {
	return Team{
		ID:          "team-1",
		Name:        "Night Owls",
		MaxSize:     4,
		CurrentSize: 2,
		Status:      StatusActive,
		LeaderID:    "lead",
		Members: []Member{
			{UserID: "lead", Role: RoleLeader, Status: MemberActive},
			{UserID: "ada", Role: RoleMember, Status: MemberActive},
			{UserID: "gone", Role: RoleMember, Status: MemberLeft},
		},
	}
}

func eventContext(now time.Time) Context {
	judgingStarts := time.Date(2026, time.March, 12, 13, 0, 0, 0, time.UTC)
	judgingEnds := time.Date(2026, time.March, 12, 17, 0, 0, 0, time.UTC)
	return Context{
		Now: now,
		Timeline: phase.Timeline{
			JudgingStartsAt: &judgingStarts,
			JudgingEndsAt:   &judgingEnds,
			EventStart:      time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC),
			EventEnd:        time.Date(2026, time.March, 12, 18, 0, 0, 0, time.UTC),
		},
	}
}

var duringEvent = time.Date(2026, time.March, 11, 12, 0, 0, 0, time.UTC)

func TestValidateCreation(t *testing.T) {
	tests := []struct {
		name     string
		teamName string
		maxSize  int
		eventMax int
		errCode  apperrors.Code
		warnCode apperrors.Code
	}{
		{name: "valid", teamName: "Night Owls", maxSize: 4, eventMax: 5},
		{name: "name too short", teamName: " A ", maxSize: 4, errCode: apperrors.CodeTeamNameLength},
		{name: "name too long", teamName: strings.Repeat("x", 51), maxSize: 4, errCode: apperrors.CodeTeamNameLength},
		{name: "multibyte name counts runes", teamName: "Ñu", maxSize: 4},
		{name: "zero size", teamName: "Night Owls", maxSize: 0, errCode: apperrors.CodeTeamInvalidSize},
		{name: "above event limit", teamName: "Night Owls", maxSize: 6, eventMax: 5, errCode: apperrors.CodeTeamSizeAboveLimit},
		{name: "solo team", teamName: "Lone Wolf", maxSize: 1, warnCode: apperrors.CodeTeamSingleMember},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateCreation(tt.teamName, tt.maxSize, tt.eventMax)
			if tt.errCode == "" && !got.IsValid() {
				t.Fatalf("expected valid, got %+v", got.Errors)
			}
			if tt.errCode != "" && !got.HasError(tt.errCode) {
				t.Fatalf("expected error %s, got %+v", tt.errCode, got.Errors)
			}
			if tt.warnCode != "" && !got.HasWarning(tt.warnCode) {
				t.Fatalf("expected warning %s, got %+v", tt.warnCode, got.Warnings)
			}
		})
	}
}

func TestValidateJoinFullTeam(t *testing.T) {
	full := sampleTeam()
	full.CurrentSize = full.MaxSize
	got := ValidateJoin(full, "newcomer", false)
	if got.IsValid() {
		t.Fatal("expected full team to reject join")
	}
	if !strings.Contains(got.Messages()[0], "full") {
		t.Fatalf("message %q does not mention full", got.Messages()[0])
	}
}

func TestValidateJoin(t *testing.T) {
	lastSlot := sampleTeam()
	lastSlot.CurrentSize = 3
	disbanded := sampleTeam()
	disbanded.Status = StatusDisbanded

	tests := []struct {
		name     string
		team     Team
		userID   string
		hasTeam  bool
		errCode  apperrors.Code
		warnCode apperrors.Code
	}{
		{name: "open slot", team: sampleTeam(), userID: "newcomer"},
		{name: "last slot", team: lastSlot, userID: "newcomer", warnCode: apperrors.CodeTeamLastSlot},
		{name: "already on another team", team: sampleTeam(), userID: "newcomer", hasTeam: true, errCode: apperrors.CodeTeamRequesterHasTeam},
		{name: "already a member", team: sampleTeam(), userID: "ada", errCode: apperrors.CodeTeamAlreadyMember},
		{name: "former member may rejoin", team: sampleTeam(), userID: "gone"},
		{name: "disbanded", team: disbanded, userID: "newcomer", errCode: apperrors.CodeTeamDisbanded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateJoin(tt.team, tt.userID, tt.hasTeam)
			if tt.errCode == "" && !got.IsValid() {
				t.Fatalf("expected valid, got %+v", got.Errors)
			}
			if tt.errCode != "" && !got.HasError(tt.errCode) {
				t.Fatalf("expected error %s, got %+v", tt.errCode, got.Errors)
			}
			if tt.warnCode != "" && !got.HasWarning(tt.warnCode) {
				t.Fatalf("expected warning %s, got %+v", tt.warnCode, got.Warnings)
			}
		})
	}
}

func TestValidateLeaveAlwaysRejectsLeader(t *testing.T) {
	contexts := []Context{
		{},
		eventContext(duringEvent),
		eventContext(time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)),
	}
	submissions := []SubmissionStatus{SubmissionNone, SubmissionDraft, SubmissionSubmitted}
	for _, ctx := range contexts {
		for _, submission := range submissions {
			ctx.Submission = submission
			got := ValidateLeave(ctx, sampleTeam(), "lead")
			if !got.HasError(apperrors.CodeTeamLeaderCannotLeave) {
				t.Fatalf("leader leave allowed with context %+v", ctx)
			}
		}
	}
}

func TestValidateLeave(t *testing.T) {
	tests := []struct {
		name     string
		ctx      Context
		userID   string
		errCode  apperrors.Code
		warnCode apperrors.Code
	}{
		{name: "member leaves", ctx: eventContext(duringEvent), userID: "ada"},
		{name: "not a member", ctx: eventContext(duringEvent), userID: "stranger", errCode: apperrors.CodeTeamNotMember},
		{name: "left member", ctx: eventContext(duringEvent), userID: "gone", errCode: apperrors.CodeTeamNotMember},
		{name: "submitted project", ctx: Context{Submission: SubmissionSubmitted}, userID: "ada", errCode: apperrors.CodeTeamSubmissionLocked},
		{name: "event over", ctx: eventContext(time.Date(2026, time.March, 12, 18, 1, 0, 0, time.UTC)), userID: "ada", errCode: apperrors.CodeTeamEventEnded},
		{name: "during judging", ctx: eventContext(time.Date(2026, time.March, 12, 14, 0, 0, 0, time.UTC)), userID: "ada", warnCode: apperrors.CodeTeamJudgingUnderway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateLeave(tt.ctx, sampleTeam(), tt.userID)
			if tt.errCode == "" && !got.IsValid() {
				t.Fatalf("expected valid, got %+v", got.Errors)
			}
			if tt.errCode != "" && !got.HasError(tt.errCode) {
				t.Fatalf("expected error %s, got %+v", tt.errCode, got.Errors)
			}
			if tt.warnCode != "" && !got.HasWarning(tt.warnCode) {
				t.Fatalf("expected warning %s, got %+v", tt.warnCode, got.Warnings)
			}
		})
	}
}

func TestValidateDisband(t *testing.T) {
	ctx := eventContext(duringEvent)
	ctx.Submission = SubmissionSubmitted

	got := ValidateDisband(ctx, sampleTeam(), "lead")
	if !got.IsValid() {
		t.Fatalf("expected leader disband to be allowed, got %+v", got.Errors)
	}
	if !got.HasWarning(apperrors.CodeTeamHasSubmission) || !got.HasWarning(apperrors.CodeTeamMembersRemoved) {
		t.Fatalf("expected submission and member warnings, got %+v", got.Warnings)
	}
	if got.Warnings[1].Metadata["Count"] != "1" {
		t.Fatalf("removed count = %q, want 1", got.Warnings[1].Metadata["Count"])
	}

	got = ValidateDisband(ctx, sampleTeam(), "ada")
	if !got.HasError(apperrors.CodeTeamLeaderRequired) {
		t.Fatalf("expected leader required, got %+v", got.Errors)
	}

	disbanded := sampleTeam()
	disbanded.Status = StatusDisbanded
	if got := ValidateDisband(ctx, disbanded, "lead"); !got.HasError(apperrors.CodeTeamDisbanded) {
		t.Fatalf("expected disbanded error, got %+v", got.Errors)
	}
}

func TestValidateLeadershipTransfer(t *testing.T) {
	tests := []struct {
		name    string
		current string
		next    string
		errCode apperrors.Code
	}{
		{name: "to active member", current: "lead", next: "ada"},
		{name: "by non leader", current: "ada", next: "lead", errCode: apperrors.CodeTeamLeaderRequired},
		{name: "to self", current: "lead", next: "lead", errCode: apperrors.CodeTeamSelfTransfer},
		{name: "to former member", current: "lead", next: "gone", errCode: apperrors.CodeTeamTransferTarget},
		{name: "to stranger", current: "lead", next: "stranger", errCode: apperrors.CodeTeamTransferTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateLeadershipTransfer(sampleTeam(), tt.current, tt.next)
			if tt.errCode == "" && !got.IsValid() {
				t.Fatalf("expected valid, got %+v", got.Errors)
			}
			if tt.errCode != "" && !got.HasError(tt.errCode) {
				t.Fatalf("expected error %s, got %+v", tt.errCode, got.Errors)
			}
		})
	}
}

func TestValidateLeadershipTransferWithoutRoster(t *testing.T) {
	roster := sampleTeam()
	roster.Members = nil
	got := ValidateLeadershipTransfer(roster, "lead", "ada")
	if !got.HasError(apperrors.CodeTeamRosterRequired) || got.HasError(apperrors.CodeTeamTransferTarget) {
		t.Fatalf("errors = %+v, want roster required", got.Errors)
	}
	if got.Errors[0].Field != "team.members" {
		t.Fatalf("field = %q", got.Errors[0].Field)
	}
}

func TestTeamDecodesLabels(t *testing.T) {
	raw := `{"status":" Disbanded ","leader_id":"lead","members":[` +
		`{"user_id":"lead","role":"LEADER","status":"Active"},` +
		`{"user_id":"ada","role":"Member","status":"PENDING"}]}`
	var got Team
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Disbanded() {
		t.Fatalf("status = %q", got.Status)
	}
	if got.Members[0].Role != RoleLeader || got.Members[0].Status != MemberActive {
		t.Fatalf("leader = %+v", got.Members[0])
	}
	if got.Members[1].Status != MemberPending {
		t.Fatalf("member = %+v", got.Members[1])
	}

	var blank Team
	if err := json.Unmarshal([]byte(`{"status":""}`), &blank); err != nil || blank.Status != StatusActive {
		t.Fatalf("blank status = %q, %v", blank.Status, err)
	}

	for _, bad := range []string{
		`{"status":"archived"}`,
		`{"members":[{"user_id":"a","role":"captain"}]}`,
		`{"members":[{"user_id":"a","status":"banned"}]}`,
	} {
		var team Team
		if err := json.Unmarshal([]byte(bad), &team); err == nil {
			t.Fatalf("expected %s to be rejected", bad)
		}
	}

	var ctx Context
	if err := json.Unmarshal([]byte(`{"submission":"Submitted"}`), &ctx); err != nil || ctx.Submission != SubmissionSubmitted {
		t.Fatalf("submission = %q, %v", ctx.Submission, err)
	}
}

func TestValidateInvitation(t *testing.T) {
	full := sampleTeam()
	full.CurrentSize = 4
	tests := []struct {
		name     string
		team     Team
		inviter  string
		address  string
		pending  []string
		errCode  apperrors.Code
		warnCode apperrors.Code
	}{
		{name: "valid", team: sampleTeam(), inviter: "lead", address: "grace@example.com"},
		{name: "not leader", team: sampleTeam(), inviter: "ada", address: "grace@example.com", errCode: apperrors.CodeTeamLeaderRequired},
		{name: "full", team: full, inviter: "lead", address: "grace@example.com", errCode: apperrors.CodeTeamFull},
		{name: "bad email", team: sampleTeam(), inviter: "lead", address: "grace-at-example", errCode: apperrors.CodeTeamInvalidInviteEmail},
		{name: "already pending", team: sampleTeam(), inviter: "lead", address: "Grace@Example.com", pending: []string{"grace@example.com"}, warnCode: apperrors.CodeTeamInvitePending},
		{name: "over capacity", team: sampleTeam(), inviter: "lead", address: "linus@example.com", pending: []string{"a@example.com", "b@example.com"}, warnCode: apperrors.CodeTeamInviteOverCapacity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateInvitation(tt.team, tt.inviter, tt.address, tt.pending)
			if tt.errCode == "" && !got.IsValid() {
				t.Fatalf("expected valid, got %+v", got.Errors)
			}
			if tt.errCode != "" && !got.HasError(tt.errCode) {
				t.Fatalf("expected error %s, got %+v", tt.errCode, got.Errors)
			}
			if tt.warnCode != "" && !got.HasWarning(tt.warnCode) {
				t.Fatalf("expected warning %s, got %+v", tt.warnCode, got.Warnings)
			}
		})
	}
}

func TestValidateInvariants(t *testing.T) {
	oversized := sampleTeam()
	oversized.CurrentSize = 5
	twoLeaders := sampleTeam()
	twoLeaders.Members[1].Role = RoleLeader
	orphaned := sampleTeam()
	orphaned.Members[0].Status = MemberLeft
	mismatched := sampleTeam()
	mismatched.LeaderID = "ada"
	disbanded := sampleTeam()
	disbanded.Status = StatusDisbanded
	disbanded.Members[0].Status = MemberLeft

	tests := []struct {
		name    string
		team    Team
		errCode apperrors.Code
	}{
		{name: "consistent", team: sampleTeam()},
		{name: "oversized", team: oversized, errCode: apperrors.CodeTeamSizeExceeded},
		{name: "two leaders", team: twoLeaders, errCode: apperrors.CodeTeamLeaderCount},
		{name: "no leader", team: orphaned, errCode: apperrors.CodeTeamLeaderCount},
		{name: "leader id mismatch", team: mismatched, errCode: apperrors.CodeTeamLeaderCount},
		{name: "disbanded needs no leader", team: disbanded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateInvariants(tt.team)
			if tt.errCode == "" && !got.IsValid() {
				t.Fatalf("expected valid, got %+v", got.Errors)
			}
			if tt.errCode != "" && !got.HasError(tt.errCode) {
				t.Fatalf("expected error %s, got %+v", tt.errCode, got.Errors)
			}
		})
	}
}

func TestHelpers(t *testing.T) {
	team := sampleTeam()
	if IsFull(team) || AvailableSlots(team) != 2 {
		t.Fatalf("IsFull/AvailableSlots = %t/%d", IsFull(team), AvailableSlots(team))
	}
	team.CurrentSize = 6
	if !IsFull(team) || AvailableSlots(team) != 0 {
		t.Fatal("expected oversized team to be full with no slots")
	}
	if !IsLeader(team, "lead") || IsLeader(team, "ada") || IsLeader(team, "") {
		t.Fatal("unexpected leader detection")
	}
	if _, ok := ActiveMember(team, "gone"); ok {
		t.Fatal("former member reported active")
	}
}

func TestJoinLocalizesFullMessage(t *testing.T) {
	full := sampleTeam()
	full.CurrentSize = full.MaxSize
	got := ValidateJoin(full, "newcomer", false).Localize("pt-BR")
	if got.Errors[0].Message != "A equipe está cheia (4 membros)" {
		t.Fatalf("pt-BR message = %q", got.Errors[0].Message)
	}
}
