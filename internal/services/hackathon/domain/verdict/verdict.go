// Package verdict defines the result shape returned by every lifecycle guard.
//
// A guard never fails with a Go error for a business rule. It returns a
// Verdict holding two severities: errors (the action is illegal and must be
// refused) and warnings (the action is legal but worth surfacing). Callers
// apply the whole approved change or none of it.
package verdict

import (
	"strings"

	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
	errori18n "github.com/louisbranch/hackathon.space/internal/platform/errors/i18n"
)

// Severity distinguishes blocking issues from advisory ones.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue is one finding produced by a guard.
//
// Metadata carries the template values used for localized rendering.
type Issue struct {
	Code     apperrors.Code    `json:"code"`
	Field    string            `json:"field,omitempty"`
	Message  string            `json:"message"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Verdict is the outcome of a guard evaluation.
type Verdict struct {
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// New returns an empty, valid verdict.
func New() Verdict {
	return Verdict{Errors: []Issue{}, Warnings: []Issue{}}
}

// IsValid reports whether the verdict carries no errors.
func (v Verdict) IsValid() bool {
	return len(v.Errors) == 0
}

// AddError records a blocking issue.
func (v *Verdict) AddError(code apperrors.Code, field, message string, metadata map[string]string) {
	v.Errors = append(v.Errors, Issue{Code: code, Field: field, Message: message, Metadata: metadata})
}

// AddWarning records an advisory issue.
func (v *Verdict) AddWarning(code apperrors.Code, field, message string, metadata map[string]string) {
	v.Warnings = append(v.Warnings, Issue{Code: code, Field: field, Message: message, Metadata: metadata})
}

// Merge appends the issues of other. A non-empty prefix is joined to each
// issue field with a dot so nested verdicts stay addressable.
func (v *Verdict) Merge(other Verdict, prefix string) {
	for _, issue := range other.Errors {
		v.Errors = append(v.Errors, withPrefix(issue, prefix))
	}
	for _, issue := range other.Warnings {
		v.Warnings = append(v.Warnings, withPrefix(issue, prefix))
	}
}

// HasError reports whether an error with the given code is present.
func (v Verdict) HasError(code apperrors.Code) bool {
	return containsCode(v.Errors, code)
}

// HasWarning reports whether a warning with the given code is present.
func (v Verdict) HasWarning(code apperrors.Code) bool {
	return containsCode(v.Warnings, code)
}

// Messages returns error messages in the order they were recorded.
func (v Verdict) Messages() []string {
	return messages(v.Errors)
}

// WarningMessages returns warning messages in the order they were recorded.
func (v Verdict) WarningMessages() []string {
	return messages(v.Warnings)
}

// Err returns the first error as a domain error, or nil when the verdict is valid.
func (v Verdict) Err() error {
	if v.IsValid() {
		return nil
	}
	first := v.Errors[0]
	metadata := make(map[string]string, len(first.Metadata)+1)
	for key, value := range first.Metadata {
		metadata[key] = value
	}
	if first.Field != "" {
		metadata["Field"] = first.Field
	}
	return apperrors.WithMetadata(first.Code, first.Message, metadata)
}

// Localize returns a copy whose messages are rendered from the locale's
// catalog. Codes without a template keep their original message.
func (v Verdict) Localize(locale string) Verdict {
	catalog := errori18n.GetCatalog(locale)
	out := Verdict{
		Errors:   make([]Issue, 0, len(v.Errors)),
		Warnings: make([]Issue, 0, len(v.Warnings)),
	}
	for _, issue := range v.Errors {
		out.Errors = append(out.Errors, localizeIssue(catalog, issue))
	}
	for _, issue := range v.Warnings {
		out.Warnings = append(out.Warnings, localizeIssue(catalog, issue))
	}
	return out
}

// LocalizeIssues renders a slice of issues for locale.
func LocalizeIssues(locale string, issues []Issue) []Issue {
	catalog := errori18n.GetCatalog(locale)
	out := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		out = append(out, localizeIssue(catalog, issue))
	}
	return out
}

func localizeIssue(catalog *errori18n.Catalog, issue Issue) Issue {
	issue.Message = catalog.FormatOr(string(issue.Code), issue.Metadata, issue.Message)
	return issue
}

func withPrefix(issue Issue, prefix string) Issue {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return issue
	}
	if issue.Field == "" {
		issue.Field = prefix
		return issue
	}
	issue.Field = prefix + "." + issue.Field
	return issue
}

func containsCode(issues []Issue, code apperrors.Code) bool {
	for _, issue := range issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}

func messages(issues []Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Message)
	}
	return out
}
