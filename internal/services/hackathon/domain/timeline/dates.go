// Package timeline validates event dates and the window timeline.
package timeline

import (
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

const (
	// MinDuration is the shortest event accepted.
	MinDuration = time.Hour
	// LongEventDays is the duration above which an event is flagged.
	LongEventDays = 30
	// FarFuture is how far ahead a start date may be before it is flagged.
	FarFuture = 365 * 24 * time.Hour
)

// Status is the publication status of an event.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Range is a start/end pair for an event.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDate accepts RFC 3339 timestamps and zone-less date or date-time
// values. Zone-less values are read as UTC.
func ParseDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// NormalizeStatus parses a status label.
func NormalizeStatus(value string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusDraft:
		return StatusDraft, true
	case StatusPublished, "live", "active":
		return StatusPublished, true
	case StatusCompleted, "ended":
		return StatusCompleted, true
	case StatusCancelled, "canceled":
		return StatusCancelled, true
	default:
		return "", false
	}
}

// ValidateEventDates parses and validates a proposed start and end.
func ValidateEventDates(now time.Time, start, end string) verdict.Verdict {
	result := verdict.New()
	startAt, startOK := ParseDate(start)
	if !startOK {
		result.AddError(apperrors.CodeDateInvalidStart, "start", "Start date is not a valid date", nil)
	}
	endAt, endOK := ParseDate(end)
	if !endOK {
		result.AddError(apperrors.CodeDateInvalidEnd, "end", "End date is not a valid date", nil)
	}
	if !startOK || !endOK {
		return result
	}
	return ValidateEventTimes(now, startAt, endAt)
}

// ValidateEventTimes validates a proposed start and end.
func ValidateEventTimes(now, start, end time.Time) verdict.Verdict {
	result := verdict.New()
	if !end.After(start) {
		result.AddError(apperrors.CodeDateEndBeforeStart, "end", "End date must be after start date", nil)
	} else if end.Sub(start) < MinDuration {
		result.AddError(apperrors.CodeDateDurationTooShort, "end", "Event must be at least 1 hour long", nil)
	}
	if end.Before(now) {
		result.AddError(apperrors.CodeDateEndInPast, "end", "End date cannot be in the past", nil)
	}

	if start.Before(now) {
		result.AddWarning(apperrors.CodeDateStartInPast, "start", "Start date is in the past", nil)
	}
	if end.Sub(start) > LongEventDays*24*time.Hour {
		result.AddWarning(apperrors.CodeDateDurationLong, "end",
			"Event is longer than "+strconv.Itoa(LongEventDays)+" days",
			map[string]string{"MaxDays": strconv.Itoa(LongEventDays)})
	}
	if start.Sub(now) > FarFuture {
		result.AddWarning(apperrors.CodeDateStartFarFuture, "start", "Start date is more than 1 year away", nil)
	}
	return result
}

// ValidateDateUpdate validates moving an event from current to proposed.
//
// An ended event accepts no change. A started event keeps its start and may
// only extend its end. An event that has not started gets the full date
// checks on the proposed range.
func ValidateDateUpdate(now time.Time, current, proposed Range, status Status) verdict.Verdict {
	result := verdict.New()
	startChanged := !proposed.Start.Equal(current.Start)
	endChanged := !proposed.End.Equal(current.End)
	if !startChanged && !endChanged {
		return result
	}

	if status == StatusCompleted || status == StatusCancelled {
		result.AddError(apperrors.CodeDateStatusLocked, "status",
			"Dates cannot be changed for a "+string(status)+" event",
			map[string]string{"Status": string(status)})
		return result
	}
	if !now.Before(current.End) {
		result.AddError(apperrors.CodeDateEventEnded, "", "Cannot modify an ended event", nil)
		return result
	}
	if now.Before(current.Start) {
		return ValidateEventTimes(now, proposed.Start, proposed.End)
	}

	if startChanged {
		result.AddError(apperrors.CodeDateStartFrozen, "start", "Start date cannot be changed after the event has started", nil)
	}
	if proposed.End.Before(current.End) {
		result.AddError(apperrors.CodeDateEndShortened, "end", "End date can only be extended after the event has started", nil)
	}
	if proposed.End.Before(now) {
		result.AddError(apperrors.CodeDateEndInPast, "end", "End date cannot be in the past", nil)
	}
	return result
}
