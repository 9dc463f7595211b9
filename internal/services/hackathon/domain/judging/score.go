// Package judging guards judge scores against the event's scoring criteria.
package judging

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Score is a numeric score as submitted by a judge. Values that are not
// numbers decode to NaN so the guard can report them instead of the
// decoder failing.
type Score float64

// NotANumber returns the Score used for malformed input.
func NotANumber() Score {
	return Score(math.NaN())
}

// Finite reports whether the score is a usable number.
func (s Score) Finite() bool {
	value := float64(s)
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}

// UnmarshalJSON accepts JSON numbers and numeric strings.
func (s *Score) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		*s = NotANumber()
		return nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var text string
		if err := json.Unmarshal(trimmed, &text); err != nil {
			return err
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			*s = NotANumber()
			return nil
		}
		*s = Score(parsed)
		return nil
	}
	var value float64
	if err := json.Unmarshal(trimmed, &value); err != nil {
		*s = NotANumber()
		return nil
	}
	*s = Score(value)
	return nil
}

// MarshalJSON writes non-finite scores as null.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Finite() {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(float64(s), 'f', -1, 64)), nil
}

// Criterion is one scoring dimension of an event.
type Criterion struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	MinScore float64 `json:"min_score"`
	MaxScore float64 `json:"max_score"`
	Weight   float64 `json:"weight"`
	Required bool    `json:"required"`
}

// JudgeScore is one judge's evaluation of one submission.
type JudgeScore struct {
	SubmissionID string           `json:"submission_id"`
	JudgeID      string           `json:"judge_id,omitempty"`
	Scores       map[string]Score `json:"scores"`
	OverallScore *Score           `json:"overall_score,omitempty"`
	Feedback     string           `json:"feedback,omitempty"`
}

func (c Criterion) label() string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return c.ID
}

func formatNumber(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
