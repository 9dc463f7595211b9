package phase

import (
	"fmt"
	"strings"
)

// Control is an organizer-set override for one governable phase.
type Control string

const (
	ControlAuto   Control = "auto"
	ControlOpen   Control = "open"
	ControlClosed Control = "closed"
)

// Phase identifies the single lifecycle stage active at an instant.
type Phase string

const (
	PhaseUpcoming           Phase = "UPCOMING"
	PhaseRegistrationOpen   Phase = "REGISTRATION_OPEN"
	PhaseRegistrationClosed Phase = "REGISTRATION_CLOSED"
	PhaseBuilding           Phase = "BUILDING"
	PhaseSubmissionsOpen    Phase = "SUBMISSIONS_OPEN"
	PhaseSubmissionsClosed  Phase = "SUBMISSIONS_CLOSED"
	PhaseJudging            Phase = "JUDGING"
	PhaseResults            Phase = "RESULTS"
	PhaseLive               Phase = "LIVE"
	PhaseCompleted          Phase = "COMPLETED"
)

// Label is the human-facing status shown alongside a phase.
type Label string

const (
	LabelUpcoming                Label = "UPCOMING"
	LabelLive                    Label = "LIVE"
	LabelCompleted               Label = "COMPLETED"
	LabelWinnersAnnounced        Label = "WINNERS_ANNOUNCED"
	LabelAwaitingRegistration    Label = "AWAITING_REGISTRATION"
	LabelRegistrationOpensSoon   Label = "REGISTRATION_OPENS_SOON"
	LabelRegistrationOpen        Label = "REGISTRATION_OPEN"
	LabelRegistrationClosingSoon Label = "REGISTRATION_CLOSING_SOON"
	LabelRegistrationClosed      Label = "REGISTRATION_CLOSED"
	LabelAwaitingBuilding        Label = "AWAITING_BUILDING"
	LabelBuildingStartsSoon      Label = "BUILDING_STARTS_SOON"
	LabelBuilding                Label = "BUILDING"
	LabelBuildingEndingSoon      Label = "BUILDING_ENDING_SOON"
	LabelBuildingEnded           Label = "BUILDING_ENDED"
	LabelAwaitingSubmissions     Label = "AWAITING_SUBMISSIONS"
	LabelSubmissionsOpenSoon     Label = "SUBMISSIONS_OPEN_SOON"
	LabelSubmissionsOpen         Label = "SUBMISSIONS_OPEN"
	LabelSubmissionsClosingSoon  Label = "SUBMISSIONS_CLOSING_SOON"
	LabelSubmissionsClosed       Label = "SUBMISSIONS_CLOSED"
	LabelAwaitingJudging         Label = "AWAITING_JUDGING"
	LabelJudgingStartsSoon       Label = "JUDGING_STARTS_SOON"
	LabelJudging                 Label = "JUDGING"
	LabelJudgingEndingSoon       Label = "JUDGING_ENDING_SOON"
	LabelJudgingEnded            Label = "JUDGING_ENDED"
	LabelAwaitingResults         Label = "AWAITING_RESULTS"
	LabelResultsSoon             Label = "RESULTS_SOON"
	LabelResultsAnnounced        Label = "RESULTS_ANNOUNCED"
)

// Source records which rule produced a resolution.
type Source string

const (
	SourceEventEnd Source = "event_end"
	SourceOverride Source = "override"
	SourceTimeline Source = "timeline"
	SourceFallback Source = "fallback"
)

// WindowState describes where an instant falls relative to one window.
type WindowState string

const (
	WindowNotConfigured WindowState = "not_configured"
	WindowNotOpen       WindowState = "not_open"
	WindowOpen          WindowState = "open"
	WindowClosed        WindowState = "closed"
)

// NormalizeControl parses a control label. Blank input means auto.
func NormalizeControl(value string) (Control, bool) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	switch trimmed {
	case "", "auto", "automatic":
		return ControlAuto, true
	case "open", "opened", "force_open":
		return ControlOpen, true
	case "closed", "close", "force_closed":
		return ControlClosed, true
	default:
		return ControlAuto, false
	}
}

// UnmarshalText accepts any spelling NormalizeControl does and rejects
// unknown labels.
func (c *Control) UnmarshalText(text []byte) error {
	control, ok := NormalizeControl(string(text))
	if !ok {
		return fmt.Errorf("unknown control %q", text)
	}
	*c = control
	return nil
}

// effective treats the zero value as auto.
func (c Control) effective() Control {
	if c == "" {
		return ControlAuto
	}
	return c
}
