package lifecyclecheck

import (
	"errors"
	"time"

	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
	"github.com/louisbranch/hackathon.space/internal/platform/i18n/catalog"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/account"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/email"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/phase"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

// Report is the JSON written for one evaluated document.
type Report struct {
	Kind          Kind              `json:"kind"`
	Now           time.Time         `json:"now"`
	Locale        string            `json:"locale"`
	Valid         bool              `json:"valid"`
	GRPCCode      string            `json:"grpc_code,omitempty"`
	Status        string            `json:"status"`
	Summary       string            `json:"summary"`
	Errors        []verdict.Issue   `json:"errors"`
	Warnings      []verdict.Issue   `json:"warnings"`
	Phase         *phase.Resolution `json:"phase,omitempty"`
	PhaseSummary  string            `json:"phase_summary,omitempty"`
	WindowState   phase.WindowState `json:"window_state,omitempty"`
	Suggestions   []string          `json:"suggestions,omitempty"`
	Plan          *account.Plan     `json:"plan,omitempty"`
	Email         *email.Assessment `json:"email,omitempty"`
	WeightedScore *float64          `json:"weighted_score,omitempty"`
}

func newReport(kind Kind, now time.Time, locale string, result evaluation) Report {
	printer := catalog.Default().Printer(locale)
	localized := result.verdict.Localize(locale)

	report := Report{
		Kind:          kind,
		Now:           now,
		Locale:        locale,
		Valid:         localized.IsValid(),
		Errors:        localized.Errors,
		Warnings:      localized.Warnings,
		Phase:         result.phase,
		WindowState:   result.window,
		Plan:          result.plan,
		Email:         result.email,
		WeightedScore: result.weighted,
	}
	if report.Valid {
		report.Status = printer.Sprintf("report.valid")
	} else {
		report.Status = printer.Sprintf("report.invalid")
	}
	var refused *apperrors.Error
	if errors.As(result.verdict.Err(), &refused) {
		report.GRPCCode = refused.Code.GRPCCode().String()
	}
	report.Summary = printer.Sprintf("report.summary", len(report.Errors), len(report.Warnings))
	if result.phase != nil {
		report.PhaseSummary = printer.Sprintf("report.phase", string(result.phase.Phase), string(result.phase.Label))
	}
	if result.decision != nil {
		report.Suggestions = result.decision.Suggestions
	}
	if result.email != nil {
		assessment := *result.email
		assessment.Verdict = localized
		report.Email = &assessment
	}
	return report
}
