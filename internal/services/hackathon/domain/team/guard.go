package team

import (
	"strconv"
	"strings"
	"unicode/utf8"

	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/email"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/phase"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

const (
	MinNameLength = 2
	MaxNameLength = 50
	MinSize       = 1
)

// ValidateCreation validates a new team. A positive eventMaxSize caps the
// team size.
func ValidateCreation(name string, maxSize, eventMaxSize int) verdict.Verdict {
	result := verdict.New()
	length := utf8.RuneCountInString(strings.TrimSpace(name))
	if length < MinNameLength || length > MaxNameLength {
		result.AddError(apperrors.CodeTeamNameLength, "name",
			"Team name must be between "+strconv.Itoa(MinNameLength)+" and "+strconv.Itoa(MaxNameLength)+" characters",
			map[string]string{"Min": strconv.Itoa(MinNameLength), "Max": strconv.Itoa(MaxNameLength)})
	}
	switch {
	case maxSize < MinSize:
		result.AddError(apperrors.CodeTeamInvalidSize, "max_size",
			"Team size must be at least "+strconv.Itoa(MinSize),
			map[string]string{"Min": strconv.Itoa(MinSize)})
	case eventMaxSize > 0 && maxSize > eventMaxSize:
		result.AddError(apperrors.CodeTeamSizeAboveLimit, "max_size",
			"Team size cannot exceed "+strconv.Itoa(eventMaxSize)+" members",
			map[string]string{"Max": strconv.Itoa(eventMaxSize)})
	case maxSize == 1:
		result.AddWarning(apperrors.CodeTeamSingleMember, "max_size",
			"A team with a maximum size of 1 cannot accept teammates", nil)
	}
	return result
}

// ValidateJoin validates userID joining t. requesterHasTeam reports whether
// the user already belongs to another team for the event.
func ValidateJoin(t Team, userID string, requesterHasTeam bool) verdict.Verdict {
	result := verdict.New()
	if t.Disbanded() {
		result.AddError(apperrors.CodeTeamDisbanded, "team", "Team has been disbanded", nil)
		return result
	}
	if _, ok := ActiveMember(t, userID); ok {
		result.AddError(apperrors.CodeTeamAlreadyMember, "user_id", "You are already a member of this team", nil)
		return result
	}
	if requesterHasTeam {
		result.AddError(apperrors.CodeTeamRequesterHasTeam, "user_id", "You are already on a team for this event", nil)
	}
	if IsFull(t) {
		result.AddError(apperrors.CodeTeamFull, "team",
			"Team is full ("+strconv.Itoa(t.MaxSize)+" members)",
			map[string]string{"MaxSize": strconv.Itoa(t.MaxSize)})
	} else if AvailableSlots(t) == 1 {
		result.AddWarning(apperrors.CodeTeamLastSlot, "team", "This is the last open slot on the team", nil)
	}
	return result
}

// ValidateLeave validates userID leaving t. The leader can never leave
// directly and must disband or transfer leadership first.
func ValidateLeave(ctx Context, t Team, userID string) verdict.Verdict {
	result := verdict.New()
	if IsLeader(t, userID) {
		result.AddError(apperrors.CodeTeamLeaderCannotLeave, "user_id",
			"Team leader cannot leave. Transfer leadership or disband the team first", nil)
	} else if _, ok := ActiveMember(t, userID); !ok {
		result.AddError(apperrors.CodeTeamNotMember, "user_id", "User is not an active member of this team", nil)
	}
	if t.Disbanded() {
		result.AddError(apperrors.CodeTeamDisbanded, "team", "Team has been disbanded", nil)
	}
	if ctx.Submission == SubmissionSubmitted {
		result.AddError(apperrors.CodeTeamSubmissionLocked, "team",
			"Cannot leave a team that has already submitted a project", nil)
	}
	addEventChecks(&result, ctx)
	return result
}

// ValidateDisband validates the leader disbanding t. Existing submissions
// and remaining members produce warnings, not errors.
func ValidateDisband(ctx Context, t Team, userID string) verdict.Verdict {
	result := verdict.New()
	if t.Disbanded() {
		result.AddError(apperrors.CodeTeamDisbanded, "team", "Team has been disbanded", nil)
		return result
	}
	if !IsLeader(t, userID) {
		addLeaderRequired(&result, "disband the team")
	}
	addEventChecks(&result, ctx)

	if ctx.Submission != SubmissionNone {
		result.AddWarning(apperrors.CodeTeamHasSubmission, "team",
			"The team has a submission that will no longer have an active team", nil)
	}
	if others := otherActiveMembers(t); others > 0 {
		result.AddWarning(apperrors.CodeTeamMembersRemoved, "team",
			strconv.Itoa(others)+" member(s) will be removed from the team",
			map[string]string{"Count": strconv.Itoa(others)})
	}
	return result
}

// ValidateLeadershipTransfer validates handing leadership of t from
// currentLeaderID to newLeaderID. The new leader is looked up in Members, so
// a snapshot without a member list is rejected.
func ValidateLeadershipTransfer(t Team, currentLeaderID, newLeaderID string) verdict.Verdict {
	result := verdict.New()
	if t.Disbanded() {
		result.AddError(apperrors.CodeTeamDisbanded, "team", "Team has been disbanded", nil)
		return result
	}
	if !IsLeader(t, currentLeaderID) {
		addLeaderRequired(&result, "transfer leadership")
		return result
	}
	if strings.TrimSpace(newLeaderID) == strings.TrimSpace(currentLeaderID) {
		result.AddError(apperrors.CodeTeamSelfTransfer, "new_leader_id", "You are already the team leader", nil)
		return result
	}
	if len(t.Members) == 0 {
		result.AddError(apperrors.CodeTeamRosterRequired, "team.members",
			"Team member list is required to transfer leadership", nil)
		return result
	}
	if _, ok := ActiveMember(t, newLeaderID); !ok {
		result.AddError(apperrors.CodeTeamTransferTarget, "new_leader_id",
			"New leader must be an active member of the team", nil)
	}
	return result
}

// ValidateInvitation validates inviterID inviting address to t.
// pendingInvites lists addresses already invited.
func ValidateInvitation(t Team, inviterID, address string, pendingInvites []string) verdict.Verdict {
	result := verdict.New()
	if t.Disbanded() {
		result.AddError(apperrors.CodeTeamDisbanded, "team", "Team has been disbanded", nil)
		return result
	}
	if !IsLeader(t, inviterID) {
		addLeaderRequired(&result, "invite members")
	}
	if IsFull(t) {
		result.AddError(apperrors.CodeTeamFull, "team",
			"Team is full ("+strconv.Itoa(t.MaxSize)+" members)",
			map[string]string{"MaxSize": strconv.Itoa(t.MaxSize)})
	}
	if !email.Valid(address) {
		result.AddError(apperrors.CodeTeamInvalidInviteEmail, "email", "Invitee email address is not valid", nil)
		return result
	}

	normalized := strings.ToLower(strings.TrimSpace(address))
	for _, pending := range pendingInvites {
		if strings.ToLower(strings.TrimSpace(pending)) == normalized {
			result.AddWarning(apperrors.CodeTeamInvitePending, "email",
				"An invitation is already pending for this email", nil)
			break
		}
	}
	if !IsFull(t) && len(pendingInvites)+1 > AvailableSlots(t) {
		result.AddWarning(apperrors.CodeTeamInviteOverCapacity, "email",
			"Pending invitations exceed the available slots", nil)
	}
	return result
}

// ValidateInvariants checks a team snapshot against the structural rules:
// size within bounds and exactly one active leader while active.
func ValidateInvariants(t Team) verdict.Verdict {
	result := verdict.New()
	if t.CurrentSize > t.MaxSize {
		result.AddError(apperrors.CodeTeamSizeExceeded, "current_size",
			"Team has "+strconv.Itoa(t.CurrentSize)+" members but allows at most "+strconv.Itoa(t.MaxSize),
			map[string]string{"CurrentSize": strconv.Itoa(t.CurrentSize), "MaxSize": strconv.Itoa(t.MaxSize)})
	}
	if t.Disbanded() {
		return result
	}
	leaders := activeLeaders(t)
	if leaders != 1 {
		result.AddError(apperrors.CodeTeamLeaderCount, "members",
			"Team must have exactly one active leader (found "+strconv.Itoa(leaders)+")",
			map[string]string{"Count": strconv.Itoa(leaders)})
		return result
	}
	if len(t.Members) > 0 && !leaderListed(t) {
		result.AddError(apperrors.CodeTeamLeaderCount, "leader_id",
			"Team must have exactly one active leader (found 0)",
			map[string]string{"Count": "0"})
	}
	return result
}

func leaderListed(t Team) bool {
	for _, member := range t.Members {
		if member.UserID == t.LeaderID && member.Status == MemberActive && member.Role == RoleLeader {
			return true
		}
	}
	return false
}

func addLeaderRequired(result *verdict.Verdict, action string) {
	result.AddError(apperrors.CodeTeamLeaderRequired, "user_id",
		"Only the team leader can "+action,
		map[string]string{"Action": action})
}

// addEventChecks blocks membership changes once the event is over and
// warns while judging is underway. A context without an event end skips
// both checks.
func addEventChecks(result *verdict.Verdict, ctx Context) {
	if ctx.Timeline.EventEnd.IsZero() {
		return
	}
	if phase.EventOver(ctx.Now, ctx.Timeline) {
		result.AddError(apperrors.CodeTeamEventEnded, "", "The event has ended. Team membership is locked", nil)
		return
	}
	if phase.Resolve(ctx.Now, ctx.Timeline, ctx.Controls, false).Phase == phase.PhaseJudging {
		result.AddWarning(apperrors.CodeTeamJudgingUnderway, "",
			"Judging is in progress. Team changes may affect evaluation", nil)
	}
}
