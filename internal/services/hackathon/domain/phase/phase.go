// Package phase resolves which lifecycle stage of a hackathon is active.
//
// Resolution is recomputed from the timeline, the organizer controls, and
// the caller's clock on every read. Nothing is stored between calls, so a
// changed control takes effect on the very next resolution.
package phase

import "time"

const (
	// ClosingSoonFraction is the trailing share of a bounded window labelled
	// as closing soon.
	ClosingSoonFraction = 0.1
	// StartsSoonWindow is how far ahead of a window start the gap before it
	// is labelled as starting soon.
	StartsSoonWindow = 24 * time.Hour
)

// Timeline holds the optional window boundaries of an event. A nil field is
// not timeline-governed. EventStart and EventEnd are always present.
type Timeline struct {
	RegistrationOpensAt  *time.Time `json:"registration_opens_at,omitempty"`
	RegistrationClosesAt *time.Time `json:"registration_closes_at,omitempty"`
	BuildingStartsAt     *time.Time `json:"building_starts_at,omitempty"`
	BuildingEndsAt       *time.Time `json:"building_ends_at,omitempty"`
	SubmissionOpensAt    *time.Time `json:"submission_opens_at,omitempty"`
	SubmissionClosesAt   *time.Time `json:"submission_closes_at,omitempty"`
	JudgingStartsAt      *time.Time `json:"judging_starts_at,omitempty"`
	JudgingEndsAt        *time.Time `json:"judging_ends_at,omitempty"`
	ResultsAnnouncedAt   *time.Time `json:"results_announced_at,omitempty"`
	EventStart           time.Time  `json:"event_start"`
	EventEnd             time.Time  `json:"event_end"`
}

// Controls holds the organizer override for each governable phase.
type Controls struct {
	Registration Control `json:"registration,omitempty"`
	Building     Control `json:"building,omitempty"`
	Submission   Control `json:"submission,omitempty"`
	Judging      Control `json:"judging,omitempty"`
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Phase  Phase  `json:"phase"`
	Label  Label  `json:"label"`
	Source Source `json:"source"`
}

// HasWindows reports whether any window boundary is configured.
func (t Timeline) HasWindows() bool {
	for _, value := range []*time.Time{
		t.RegistrationOpensAt, t.RegistrationClosesAt,
		t.BuildingStartsAt, t.BuildingEndsAt,
		t.SubmissionOpensAt, t.SubmissionClosesAt,
		t.JudgingStartsAt, t.JudgingEndsAt,
		t.ResultsAnnouncedAt,
	} {
		if value != nil {
			return true
		}
	}
	return false
}

// Resolve returns the single phase active at now. The first matching rule
// wins: event end, then organizer overrides, then the timeline walk, then
// the coarse event range.
func Resolve(now time.Time, timeline Timeline, controls Controls, winnersAnnounced bool) Resolution {
	if EventOver(now, timeline) {
		label := LabelCompleted
		if winnersAnnounced {
			label = LabelWinnersAnnounced
		}
		return Resolution{Phase: PhaseCompleted, Label: label, Source: SourceEventEnd}
	}
	if resolution, ok := resolveOverride(controls); ok {
		return resolution
	}
	if timeline.HasWindows() {
		return resolveTimeline(now, timeline, controls, winnersAnnounced)
	}
	return resolveFallback(now, timeline)
}

func resolveOverride(controls Controls) (Resolution, bool) {
	switch {
	case controls.Building.effective() == ControlOpen:
		return overridden(PhaseBuilding, LabelBuilding), true
	case controls.Submission.effective() == ControlOpen:
		return overridden(PhaseSubmissionsOpen, LabelSubmissionsOpen), true
	case controls.Judging.effective() == ControlOpen:
		return overridden(PhaseJudging, LabelJudging), true
	case controls.Registration.effective() == ControlClosed:
		return overridden(PhaseRegistrationClosed, LabelRegistrationClosed), true
	case controls.Registration.effective() == ControlOpen:
		return overridden(PhaseRegistrationOpen, LabelRegistrationOpen), true
	}
	return Resolution{}, false
}

func overridden(phase Phase, label Label) Resolution {
	return Resolution{Phase: phase, Label: label, Source: SourceOverride}
}

func resolveFallback(now time.Time, timeline Timeline) Resolution {
	if now.Before(timeline.EventStart) {
		return Resolution{Phase: PhaseUpcoming, Label: LabelUpcoming, Source: SourceFallback}
	}
	return Resolution{Phase: PhaseLive, Label: LabelLive, Source: SourceFallback}
}

// EventOver reports whether now is strictly after the event end.
func EventOver(now time.Time, timeline Timeline) bool {
	return now.After(timeline.EventEnd)
}

// EventStarted reports whether now is at or after the event start.
func EventStarted(now time.Time, timeline Timeline) bool {
	return !now.Before(timeline.EventStart)
}

// WindowStateAt places now relative to a window. Both bounds are inclusive;
// a nil opens is unbounded in the past and a nil closes is unbounded ahead.
func WindowStateAt(now time.Time, opens, closes *time.Time) WindowState {
	if opens == nil && closes == nil {
		return WindowNotConfigured
	}
	if opens != nil && now.Before(*opens) {
		return WindowNotOpen
	}
	if closes != nil && now.After(*closes) {
		return WindowClosed
	}
	return WindowOpen
}

// GovernedWindowState layers the event end and an organizer control over
// WindowStateAt. The event end always closes the window; a forced control
// beats the timeline. An unconfigured window follows the event range, and a
// zero eventStart or eventEnd leaves that side unbounded.
func GovernedWindowState(now time.Time, opens, closes *time.Time, eventStart, eventEnd time.Time, control Control) WindowState {
	if !eventEnd.IsZero() && now.After(eventEnd) {
		return WindowClosed
	}
	switch control.effective() {
	case ControlOpen:
		return WindowOpen
	case ControlClosed:
		return WindowClosed
	}
	state := WindowStateAt(now, opens, closes)
	if state != WindowNotConfigured {
		return state
	}
	if !eventStart.IsZero() && now.Before(eventStart) {
		return WindowNotOpen
	}
	return WindowOpen
}

// SubmissionState reports whether submissions are accepted at now.
func SubmissionState(now time.Time, timeline Timeline, controls Controls) WindowState {
	return GovernedWindowState(now, timeline.SubmissionOpensAt, timeline.SubmissionClosesAt,
		timeline.EventStart, timeline.EventEnd, controls.Submission)
}

// TimeUntilClose returns the time left before closes. It reports false when
// the window has no close or has already closed.
func TimeUntilClose(now time.Time, closes *time.Time) (time.Duration, bool) {
	if closes == nil || now.After(*closes) {
		return 0, false
	}
	return closes.Sub(now), true
}
