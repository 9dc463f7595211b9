// Package submission guards project submission timing, content, and
// ownership.
package submission

import (
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/phase"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/team"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

// Status is the review status of a submission.
type Status string

const (
	StatusDraft        Status = "draft"
	StatusSubmitted    Status = "submitted"
	StatusDisqualified Status = "disqualified"
)

// Window describes when submissions are accepted. Nil bounds are not
// timeline-governed; a zero EventStart or EventEnd is ignored.
type Window struct {
	OpensAt    *time.Time    `json:"opens_at,omitempty"`
	ClosesAt   *time.Time    `json:"closes_at,omitempty"`
	EventStart time.Time     `json:"event_start"`
	EventEnd   time.Time     `json:"event_end"`
	Control    phase.Control `json:"control,omitempty"`
}

// Data is the editable content of a submission.
type Data struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	RepositoryURL   string   `json:"repository_url,omitempty"`
	DemoURL         string   `json:"demo_url,omitempty"`
	VideoURL        string   `json:"video_url,omitempty"`
	PresentationURL string   `json:"presentation_url,omitempty"`
	Technologies    []string `json:"technologies,omitempty"`
}

// Submission is a stored submission snapshot.
type Submission struct {
	ID     string `json:"id"`
	UserID string `json:"user_id,omitempty"`
	TeamID string `json:"team_id,omitempty"`
	Status Status `json:"status"`
}

// Request gathers everything needed to validate a create or an update.
// A nil Existing means the submission is being created.
type Request struct {
	Window     Window      `json:"window"`
	Data       Data        `json:"data"`
	UserID     string      `json:"user_id"`
	Team       *team.Team  `json:"team,omitempty"`
	Existing   *Submission `json:"existing,omitempty"`
	NextStatus Status      `json:"next_status,omitempty"`
}

// WindowFromTimeline builds the submission window of an event.
func WindowFromTimeline(timeline phase.Timeline, controls phase.Controls) Window {
	return Window{
		OpensAt:    timeline.SubmissionOpensAt,
		ClosesAt:   timeline.SubmissionClosesAt,
		EventStart: timeline.EventStart,
		EventEnd:   timeline.EventEnd,
		Control:    controls.Submission,
	}
}

// NormalizeStatus parses a status label. Blank input means draft.
func NormalizeStatus(value string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case "", StatusDraft:
		return StatusDraft, true
	case StatusSubmitted:
		return StatusSubmitted, true
	case StatusDisqualified:
		return StatusDisqualified, true
	default:
		return "", false
	}
}

// UnmarshalText normalizes the status label. Blank input stays blank so a
// missing next status keeps the stored one.
func (s *Status) UnmarshalText(text []byte) error {
	if strings.TrimSpace(string(text)) == "" {
		*s = ""
		return nil
	}
	status, ok := NormalizeStatus(string(text))
	if !ok {
		return fmt.Errorf("unknown submission status %q", text)
	}
	*s = status
	return nil
}

// Validate runs every submission check for req and merges the results.
func Validate(now time.Time, req Request) verdict.Verdict {
	result := verdict.New()
	result.Merge(ValidateTiming(now, req.Window, req.Existing != nil), "")
	result.Merge(ValidateTeamPermissions(req.UserID, req.Team), "")
	if req.Existing != nil {
		next := req.NextStatus
		if next == "" {
			next = req.Existing.Status
		}
		result.Merge(ValidateOwnership(*req.Existing), "existing")
		result.Merge(ValidateUpdate(*req.Existing, next), "")
	} else {
		result.Merge(ValidateCreateStatus(req.NextStatus), "")
	}
	result.Merge(ValidateData(req.Data), "data")
	return result
}
