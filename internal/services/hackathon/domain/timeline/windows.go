package timeline

import (
	"time"

	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/phase"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

type namedWindow struct {
	name        string
	openField   string
	closeField  string
	opens       *time.Time
	closes      *time.Time
	insideEvent bool
}

func namedWindows(t phase.Timeline) []namedWindow {
	return []namedWindow{
		{name: "registration", openField: "registration_opens_at", closeField: "registration_closes_at",
			opens: t.RegistrationOpensAt, closes: t.RegistrationClosesAt},
		{name: "building", openField: "building_starts_at", closeField: "building_ends_at",
			opens: t.BuildingStartsAt, closes: t.BuildingEndsAt, insideEvent: true},
		{name: "submission", openField: "submission_opens_at", closeField: "submission_closes_at",
			opens: t.SubmissionOpensAt, closes: t.SubmissionClosesAt, insideEvent: true},
		{name: "judging", openField: "judging_starts_at", closeField: "judging_ends_at",
			opens: t.JudgingStartsAt, closes: t.JudgingEndsAt, insideEvent: true},
		{name: "results", openField: "results_announced_at",
			opens: t.ResultsAnnouncedAt, insideEvent: true},
	}
}

// ValidateTimeline checks that configured windows are well formed and
// ordered. Registration may run before the event; it must close by the end.
func ValidateTimeline(t phase.Timeline) verdict.Verdict {
	result := verdict.New()
	if !t.EventEnd.After(t.EventStart) {
		result.AddError(apperrors.CodeDateEndBeforeStart, "event_end", "End date must be after start date", nil)
	}

	var previous *namedWindow
	for _, window := range namedWindows(t) {
		if window.opens == nil && window.closes == nil {
			continue
		}
		window := window
		meta := map[string]string{"Window": window.name}

		if window.opens != nil && window.closes != nil && !window.closes.After(*window.opens) {
			result.AddError(apperrors.CodeTimelineWindowInverted, window.closeField,
				"The "+window.name+" window must close after it opens", meta)
		}
		if outsideEvent(t, window) {
			result.AddWarning(apperrors.CodeTimelineWindowOutsideEvent, window.openField,
				"The "+window.name+" window falls outside the event dates", meta)
		}
		if previous != nil && previous.closes != nil && window.opens != nil && window.opens.Before(*previous.closes) {
			result.AddWarning(apperrors.CodeTimelineWindowOverlap, window.openField,
				"The "+window.name+" window starts before the "+previous.name+" window ends",
				map[string]string{"Window": window.name, "Previous": previous.name})
		}
		previous = &window
	}

	if t.ResultsAnnouncedAt != nil && t.JudgingEndsAt != nil && t.ResultsAnnouncedAt.Before(*t.JudgingEndsAt) {
		result.AddError(apperrors.CodeTimelineResultsBeforeJudging, "results_announced_at",
			"Results cannot be announced before judging ends", nil)
	}
	return result
}

func outsideEvent(t phase.Timeline, window namedWindow) bool {
	if window.closes != nil && window.closes.After(t.EventEnd) {
		return true
	}
	if window.opens != nil && window.opens.After(t.EventEnd) {
		return true
	}
	if window.insideEvent && window.opens != nil && window.opens.Before(t.EventStart) {
		return true
	}
	return false
}
