package phase

import "time"

// window is one stage of the timeline walk with the labels it can produce.
type window struct {
	opens   *time.Time
	closes  *time.Time
	control Control

	active      Phase
	after       Phase
	openLabel   Label
	closing     Label
	startsSoon  Label
	awaiting    Label
	closedLabel Label
}

func (w window) configured() bool {
	return w.opens != nil || w.closes != nil
}

func (w window) closingSoon(now time.Time) bool {
	if w.opens == nil || w.closes == nil {
		return false
	}
	length := w.closes.Sub(*w.opens)
	if length <= 0 {
		return false
	}
	remaining := w.closes.Sub(now)
	return float64(remaining) <= float64(length)*ClosingSoonFraction
}

func windows(timeline Timeline, controls Controls, winnersAnnounced bool) []window {
	resultsLabel := LabelResultsAnnounced
	if winnersAnnounced {
		resultsLabel = LabelWinnersAnnounced
	}
	return []window{
		{
			opens: timeline.RegistrationOpensAt, closes: timeline.RegistrationClosesAt,
			control: controls.Registration,
			active: PhaseRegistrationOpen, after: PhaseRegistrationClosed,
			openLabel: LabelRegistrationOpen, closing: LabelRegistrationClosingSoon,
			startsSoon: LabelRegistrationOpensSoon, awaiting: LabelAwaitingRegistration,
			closedLabel: LabelRegistrationClosed,
		},
		{
			opens: timeline.BuildingStartsAt, closes: timeline.BuildingEndsAt,
			control: controls.Building,
			active: PhaseBuilding, after: PhaseLive,
			openLabel: LabelBuilding, closing: LabelBuildingEndingSoon,
			startsSoon: LabelBuildingStartsSoon, awaiting: LabelAwaitingBuilding,
			closedLabel: LabelBuildingEnded,
		},
		{
			opens: timeline.SubmissionOpensAt, closes: timeline.SubmissionClosesAt,
			control: controls.Submission,
			active: PhaseSubmissionsOpen, after: PhaseSubmissionsClosed,
			openLabel: LabelSubmissionsOpen, closing: LabelSubmissionsClosingSoon,
			startsSoon: LabelSubmissionsOpenSoon, awaiting: LabelAwaitingSubmissions,
			closedLabel: LabelSubmissionsClosed,
		},
		{
			opens: timeline.JudgingStartsAt, closes: timeline.JudgingEndsAt,
			control: controls.Judging,
			active: PhaseJudging, after: PhaseSubmissionsClosed,
			openLabel: LabelJudging, closing: LabelJudgingEndingSoon,
			startsSoon: LabelJudgingStartsSoon, awaiting: LabelAwaitingJudging,
			closedLabel: LabelAwaitingResults,
		},
		{
			opens: timeline.ResultsAnnouncedAt,
			active: PhaseResults, after: PhaseResults,
			openLabel: resultsLabel, closing: resultsLabel,
			startsSoon: LabelResultsSoon, awaiting: LabelAwaitingResults,
			closedLabel: resultsLabel,
		},
	}
}

// resolveTimeline walks the configured windows in temporal order and
// returns the window containing now or the gap around it.
func resolveTimeline(now time.Time, timeline Timeline, controls Controls, winnersAnnounced bool) Resolution {
	var previous *window
	for _, current := range windows(timeline, controls, winnersAnnounced) {
		if !current.configured() {
			continue
		}
		current := current
		if current.opens != nil && now.Before(*current.opens) {
			return gap(now, timeline, previous, current)
		}
		if current.control.effective() == ControlClosed {
			previous = &current
			continue
		}
		if current.closes == nil || !now.After(*current.closes) {
			label := current.openLabel
			if current.closingSoon(now) {
				label = current.closing
			}
			return Resolution{Phase: current.active, Label: label, Source: SourceTimeline}
		}
		previous = &current
	}
	if previous == nil {
		return resolveFallback(now, timeline)
	}
	return Resolution{Phase: previous.after, Label: previous.closedLabel, Source: SourceTimeline}
}

// gap resolves an instant between the previous window (if any) and next.
func gap(now time.Time, timeline Timeline, previous *window, next window) Resolution {
	soon := next.opens.Sub(now) <= StartsSoonWindow
	if previous == nil {
		phase := PhaseUpcoming
		if EventStarted(now, timeline) {
			phase = PhaseLive
		}
		label := next.awaiting
		if soon {
			label = next.startsSoon
		}
		return Resolution{Phase: phase, Label: label, Source: SourceTimeline}
	}
	label := previous.closedLabel
	if soon {
		label = next.startsSoon
	}
	return Resolution{Phase: previous.after, Label: label, Source: SourceTimeline}
}
