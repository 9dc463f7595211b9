package lifecyclecheck

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/account"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/email"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/judging"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/phase"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/submission"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/team"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/timeline"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

// Kind names the operation a document asks for.
type Kind string

const (
	KindResolvePhase            Kind = "resolve_phase"
	KindSubmissionState         Kind = "submission_state"
	KindEventDates              Kind = "event_dates"
	KindDateUpdate              Kind = "date_update"
	KindTimeline                Kind = "timeline"
	KindTeamCreation            Kind = "team_creation"
	KindTeamJoin                Kind = "team_join"
	KindTeamLeave               Kind = "team_leave"
	KindTeamDisband             Kind = "team_disband"
	KindTeamLeadershipTransfer  Kind = "team_leadership_transfer"
	KindTeamInvitation          Kind = "team_invitation"
	KindTeamInvariants          Kind = "team_invariants"
	KindSubmission              Kind = "submission"
	KindSubmissionData          Kind = "submission_data"
	KindCriterionScore          Kind = "criterion_score"
	KindJudgeScore              Kind = "judge_score"
	KindOverallScore            Kind = "overall_score"
	KindScoreBatch              Kind = "score_batch"
	KindCriteria                Kind = "criteria"
	KindUserDeletion            Kind = "user_deletion"
	KindOrganizerRoleRevocation Kind = "organizer_role_revocation"
	KindAdminRoleRevocation     Kind = "admin_role_revocation"
	KindOwnershipTransfer       Kind = "ownership_transfer"
	KindEmail                   Kind = "email"
)

// evaluation is the raw outcome of one operation before localization.
type evaluation struct {
	verdict  verdict.Verdict
	phase    *phase.Resolution
	window   phase.WindowState
	decision *account.Decision
	plan     *account.Plan
	email    *email.Assessment
	weighted *float64
}

type evaluator func(now time.Time, input []byte) (evaluation, error)

type eventInput struct {
	Timeline         phase.Timeline `json:"timeline"`
	Controls         phase.Controls `json:"controls"`
	WinnersAnnounced bool           `json:"winners_announced"`
}

type teamEventInput struct {
	Team       team.Team             `json:"team"`
	UserID     string                `json:"user_id"`
	Timeline   phase.Timeline        `json:"timeline"`
	Controls   phase.Controls        `json:"controls"`
	Submission team.SubmissionStatus `json:"submission"`
}

// requireEventRange rejects a timeline without both event bounds. A zero
// event end would otherwise resolve as an event that is already over.
func requireEventRange(t phase.Timeline) error {
	if t.EventStart.IsZero() || t.EventEnd.IsZero() {
		return errors.New("timeline.event_start and timeline.event_end are required")
	}
	return nil
}

// context builds the team context. Omitting the timeline skips the event
// checks; a partial timeline must carry both event bounds.
func (in teamEventInput) context(now time.Time) (team.Context, error) {
	if in.Timeline != (phase.Timeline{}) {
		if err := requireEventRange(in.Timeline); err != nil {
			return team.Context{}, err
		}
	}
	return team.Context{Now: now, Timeline: in.Timeline, Controls: in.Controls, Submission: in.Submission}, nil
}

type scoringInput struct {
	Score    judging.JudgeScore   `json:"score"`
	Items    []judging.JudgeScore `json:"items"`
	Criteria []judging.Criterion  `json:"criteria"`
	Required []string             `json:"required"`
}

var evaluators = map[Kind]evaluator{
	KindResolvePhase: func(now time.Time, raw []byte) (evaluation, error) {
		in, err := decode[eventInput](raw)
		if err != nil {
			return evaluation{}, err
		}
		if err := requireEventRange(in.Timeline); err != nil {
			return evaluation{}, err
		}
		resolution := phase.Resolve(now, in.Timeline, in.Controls, in.WinnersAnnounced)
		return evaluation{verdict: verdict.New(), phase: &resolution}, nil
	},
	KindSubmissionState: func(now time.Time, raw []byte) (evaluation, error) {
		in, err := decode[eventInput](raw)
		if err != nil {
			return evaluation{}, err
		}
		if err := requireEventRange(in.Timeline); err != nil {
			return evaluation{}, err
		}
		return evaluation{verdict: verdict.New(), window: phase.SubmissionState(now, in.Timeline, in.Controls)}, nil
	},
	KindEventDates: func(now time.Time, raw []byte) (evaluation, error) {
		in, err := decode[struct {
			Start string `json:"start"`
			End   string `json:"end"`
		}](raw)
		if err != nil {
			return evaluation{}, err
		}
		return evaluation{verdict: timeline.ValidateEventDates(now, in.Start, in.End)}, nil
	},
	KindDateUpdate: func(now time.Time, raw []byte) (evaluation, error) {
		in, err := decode[struct {
			Current  timeline.Range `json:"current"`
			Proposed timeline.Range `json:"proposed"`
			Status   string         `json:"status"`
		}](raw)
		if err != nil {
			return evaluation{}, err
		}
		status, ok := timeline.NormalizeStatus(in.Status)
		if !ok && in.Status != "" {
			return evaluation{}, fmt.Errorf("unknown event status %q", in.Status)
		}
		return evaluation{verdict: timeline.ValidateDateUpdate(now, in.Current, in.Proposed, status)}, nil
	},
	KindTimeline: func(_ time.Time, raw []byte) (evaluation, error) {
		in, err := decode[eventInput](raw)
		if err != nil {
			return evaluation{}, err
		}
		return evaluation{verdict: timeline.ValidateTimeline(in.Timeline)}, nil
	},
	KindTeamCreation: func(_ time.Time, raw []byte) (evaluation, error) {
		in, err := decode[struct {
			Name         string `json:"name"`
			MaxSize      int    `json:"max_size"`
			EventMaxSize int    `json:"event_max_size"`
		}](raw)
		if err != nil {
			return evaluation{}, err
		}
		return evaluation{verdict: team.ValidateCreation(in.Name, in.MaxSize, in.EventMaxSize)}, nil
	},
	KindTeamJoin: func(_ time.Time, raw []byte) (evaluation, error) {
		in, err := decode[struct {
			Team             team.Team `json:"team"`
			UserID           string    `json:"user_id"`
			RequesterHasTeam bool      `json:"requester_has_team"`
		}](raw)
		if err != nil {
			return evaluation{}, err
		}
		return evaluation{verdict: team.ValidateJoin(in.Team, in.UserID, in.RequesterHasTeam)}, nil
	},
	KindTeamLeave: func(now time.Time, raw []byte) (evaluation, error) {
		in, err := decode[teamEventInput](raw)
		if err != nil {
			return evaluation{}, err
		}
		ctx, err := in.context(now)
		if err != nil {
			return evaluation{}, err
		}
		return evaluation{verdict: team.ValidateLeave(ctx, in.Team, in.UserID)}, nil
	},
	KindTeamDisband: func(now time.Time, raw []byte) (evaluation, error) {
		in, err := decode[teamEventInput](raw)
		if err != nil {
			return evaluation{}, err
		}
		ctx, err := in.context(now)
		if err != nil {
			return evaluation{}, err
		}
		return evaluation{verdict: team.ValidateDisband(ctx, in.Team, in.UserID)}, nil
	},
	KindTeamLeadershipTransfer: func(_ time.Time, raw []byte) (evaluation, error) {
		in, err := decode[struct {
			Team            team.Team `json:"team"`
			CurrentLeaderID string    `json:"current_leader_id"`
			NewLeaderID     string    `json:"new_leader_id"`
		}](raw)
		if err != nil {
			return evaluation{}, err
		}
		return evaluation{verdict: team.ValidateLeadershipTransfer(in.Team, in.CurrentLeaderID, in.NewLeaderID)}, nil
	},
	KindTeamInvitation: func(_ time.Time, raw []byte) (evaluation, error) {
		in, err := decode[struct {
			Team           team.Team `json:"team"`
			InviterID      string    `json:"inviter_id"`
			Email          string    `json:"email"`
			PendingInvites []string  `json:"pending_invites"`
		}](raw)
		if err != nil {
			return evaluation{}, err
		}
		return evaluation{verdict: team.ValidateInvitation(in.Team, in.InviterID, in.Email, in.PendingInvites)}, nil
	},
	KindTeamInvariants: func(_ time.Time, raw []byte) (evaluation, error) {
		in, err := decode[struct {
			Team team.Team `json:"team"`
		}](raw)
		if err != nil {
			return evaluation{}, err
		}
		return evaluation{verdict: team.ValidateInvariants(in.Team)}, nil
	},
	KindSubmission: func(now time.Time, raw []byte) (evaluation, error) {
		in, err := decode[submission.Request](raw)
		if err != nil {
			return evaluation{}, err
		}
		return evaluation{verdict: submission.Validate(now, in)}, nil
	},
	KindSubmissionData: func(_ time.Time, raw []byte) (evaluation, error) {
		in, err := decode[submission.Data](raw)
		if err != nil {
			return evaluation{}, err
		}
		return evaluation{verdict: submission.ValidateData(in)}, nil
	},
	KindCriterionScore: func(_ time.Time, raw []byte) (evaluation, error) {
		in, err := decode[struct {
			Score     judging.Score     `json:"score"`
			Criterion judging.Criterion `json:"criterion"`
		}](raw)
		if err != nil {
			return evaluation{}, err
		}
		return evaluation{verdict: judging.ValidateCriterionScore(float64(in.Score), in.Criterion)}, nil
	},
	KindJudgeScore: func(_ time.Time, raw []byte) (evaluation, error) {
		in, err := decode[scoringInput](raw)
		if err != nil {
			return evaluation{}, err
		}
		result := evaluation{verdict: judging.ValidateJudgeScore(in.Score, in.Criteria, in.Required)}
		if weighted, ok := judging.WeightedScore(in.Score.Scores, in.Criteria); ok {
			result.weighted = &weighted
		}
		return result, nil
	},
	KindOverallScore: func(_ time.Time, raw []byte) (evaluation, error) {
		in, err := decode[scoringInput](raw)
		if err != nil {
			return evaluation{}, err
		}
		result := evaluation{verdict: judging.ValidateOverallScore(in.Score, in.Criteria)}
		if weighted, ok := judging.WeightedScore(in.Score.Scores, in.Criteria); ok {
			result.weighted = &weighted
		}
		return result, nil
	},
	KindScoreBatch: func(_ time.Time, raw []byte) (evaluation, error) {
		in, err := decode[scoringInput](raw)
		if err != nil {
			return evaluation{}, err
		}
		return evaluation{verdict: judging.ValidateBatch(in.Items, in.Criteria, in.Required)}, nil
	},
	KindCriteria: func(_ time.Time, raw []byte) (evaluation, error) {
		in, err := decode[scoringInput](raw)
		if err != nil {
			return evaluation{}, err
		}
		return evaluation{verdict: judging.ValidateCriteria(in.Criteria)}, nil
	},
	KindUserDeletion: func(_ time.Time, raw []byte) (evaluation, error) {
		in, err := decode[account.DeletionContext](raw)
		if err != nil {
			return evaluation{}, err
		}
		decision := account.ValidateUserDeletion(in)
		plan := account.GenerateDeletionPlan(in, decision)
		return evaluation{verdict: decision.Verdict(), decision: &decision, plan: &plan}, nil
	},
	KindOrganizerRoleRevocation: decisionEvaluator(account.ValidateOrganizerRoleRevocation),
	KindAdminRoleRevocation:     decisionEvaluator(account.ValidateAdminRoleRevocation),
	KindOwnershipTransfer:       decisionEvaluator(account.ValidateOwnershipTransfer),
	KindEmail: func(_ time.Time, raw []byte) (evaluation, error) {
		in, err := decode[struct {
			Email string `json:"email"`
		}](raw)
		if err != nil {
			return evaluation{}, err
		}
		assessment := email.Assess(in.Email)
		return evaluation{verdict: assessment.Verdict, email: &assessment}, nil
	},
}

func decisionEvaluator[T any](guard func(T) account.Decision) evaluator {
	return func(_ time.Time, raw []byte) (evaluation, error) {
		in, err := decode[T](raw)
		if err != nil {
			return evaluation{}, err
		}
		decision := guard(in)
		return evaluation{verdict: decision.Verdict(), decision: &decision}, nil
	}
}

// decode reads a JSON input strictly so misspelled fields are reported.
func decode[T any](raw []byte) (T, error) {
	var out T
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&out); err != nil {
		return out, fmt.Errorf("decode input: %w", err)
	}
	return out, nil
}

func kindNames() []string {
	names := make([]string, 0, len(evaluators))
	for kind := range evaluators {
		names = append(names, string(kind))
	}
	sort.Strings(names)
	return names
}
