package submission

import (
	"math"
	"strconv"
	"time"

	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/phase"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/team"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

// ClosingSoonThreshold is the remaining time below which a warning is added.
const ClosingSoonThreshold = time.Hour

// ValidateTiming checks that the submission window accepts a create, or an
// update when isUpdate is set. The event end always blocks and a forced
// control beats the timeline.
func ValidateTiming(now time.Time, w Window, isUpdate bool) verdict.Verdict {
	result := verdict.New()
	if !w.EventEnd.IsZero() && now.After(w.EventEnd) {
		result.AddError(apperrors.CodeSubmissionEventEnded, "", "The event has ended. Submissions are now read-only", nil)
		return result
	}
	if w.Control == phase.ControlClosed {
		result.AddError(apperrors.CodeSubmissionClosedByOrganizer, "", "Submissions have been closed by the organizers", nil)
		return result
	}

	switch phase.GovernedWindowState(now, w.OpensAt, w.ClosesAt, w.EventStart, w.EventEnd, w.Control) {
	case phase.WindowNotOpen:
		result.AddError(apperrors.CodeSubmissionNotOpen, "", "Submissions are not open yet", nil)
	case phase.WindowClosed:
		if isUpdate {
			result.AddError(apperrors.CodeSubmissionReadOnly, "", "Submission period has ended. Submissions are now read-only", nil)
		} else {
			result.AddError(apperrors.CodeSubmissionClosed, "", "Submission period has ended", nil)
		}
	case phase.WindowOpen:
		if remaining, ok := phase.TimeUntilClose(now, w.ClosesAt); ok && remaining < ClosingSoonThreshold {
			minutes := strconv.Itoa(int(math.Ceil(remaining.Minutes())))
			result.AddWarning(apperrors.CodeSubmissionClosingSoon, "",
				"Submissions close in "+minutes+" minutes",
				map[string]string{"Minutes": minutes})
		}
	}
	return result
}

// ValidateTeamPermissions allows solo submitters and, for team submissions,
// only the team leader.
func ValidateTeamPermissions(userID string, t *team.Team) verdict.Verdict {
	result := verdict.New()
	if t == nil {
		return result
	}
	if t.Disbanded() {
		result.AddError(apperrors.CodeTeamDisbanded, "team", "Team has been disbanded", nil)
		return result
	}
	if !team.IsLeader(*t, userID) {
		result.AddError(apperrors.CodeSubmissionLeaderRequired, "user_id",
			"Only the team leader can create or edit the team submission", nil)
	}
	return result
}

// ValidateOwnership requires a submission to belong to exactly one of a
// user or a team.
func ValidateOwnership(s Submission) verdict.Verdict {
	result := verdict.New()
	hasUser := s.UserID != ""
	hasTeam := s.TeamID != ""
	switch {
	case hasUser && hasTeam:
		result.AddError(apperrors.CodeSubmissionOwnerConflict, "",
			"A submission belongs to either a user or a team, not both", nil)
	case !hasUser && !hasTeam:
		result.AddError(apperrors.CodeSubmissionOwnerMissing, "",
			"A submission must belong to a user or a team", nil)
	}
	return result
}

// ValidateCreateStatus allows a new submission to start as a draft or as
// submitted. Blank means draft.
func ValidateCreateStatus(status Status) verdict.Verdict {
	result := verdict.New()
	switch status {
	case "", StatusDraft, StatusSubmitted:
		return result
	}
	result.AddError(apperrors.CodeSubmissionInitialStatus, "status",
		"Submissions can only be created as draft or submitted, not "+string(status),
		map[string]string{"Status": string(status)})
	return result
}

// ValidateUpdate checks a participant moving existing to next. Disqualified
// submissions are frozen and participants only move between draft and
// submitted.
func ValidateUpdate(existing Submission, next Status) verdict.Verdict {
	result := verdict.New()
	if existing.Status == StatusDisqualified {
		result.AddError(apperrors.CodeSubmissionDisqualified, "status", "Disqualified submissions cannot be changed", nil)
		return result
	}
	if next != StatusDraft && next != StatusSubmitted {
		result.AddError(apperrors.CodeSubmissionInvalidTransition, "status",
			"Submission cannot move from "+string(existing.Status)+" to "+string(next),
			map[string]string{"From": string(existing.Status), "To": string(next)})
		return result
	}
	if existing.Status == StatusSubmitted && next == StatusDraft {
		result.AddWarning(apperrors.CodeSubmissionWithdrawn, "status",
			"Submission will return to draft and will not be judged until resubmitted", nil)
	}
	return result
}
