// Package account guards account deletion and the role changes that lead up
// to it.
//
// Hard blockers refuse the operation until something is resolved elsewhere.
// Warnings describe side effects the caller must perform and surface.
package account

import (
	"fmt"
	"strings"

	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

// Role is a platform-wide role held by a user.
type Role string

const (
	RoleParticipant Role = "participant"
	RoleJudge       Role = "judge"
	RoleOrganizer   Role = "organizer"
	RoleAdmin       Role = "admin"
)

// NormalizeRole parses a role name.
func NormalizeRole(value string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleParticipant:
		return RoleParticipant, true
	case RoleJudge:
		return RoleJudge, true
	case RoleOrganizer:
		return RoleOrganizer, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// UnmarshalText normalizes the role name and rejects unknown roles.
func (r *Role) UnmarshalText(text []byte) error {
	role, ok := NormalizeRole(string(text))
	if !ok {
		return fmt.Errorf("unknown role %q", text)
	}
	*r = role
	return nil
}

// Roles is the set of roles held by one user.
type Roles []Role

// Has reports whether role is held.
func (r Roles) Has(role Role) bool {
	for _, held := range r {
		if held == role {
			return true
		}
	}
	return false
}

// Decision is the outcome of an account guard. Blockers refuse the
// operation, warnings do not. Suggestions describe how to clear the
// blockers.
type Decision struct {
	CanDelete   bool            `json:"can_delete"`
	Blockers    []verdict.Issue `json:"blockers"`
	Warnings    []verdict.Issue `json:"warnings"`
	Suggestions []string        `json:"suggestions"`
}

func newDecision() Decision {
	return Decision{Blockers: []verdict.Issue{}, Warnings: []verdict.Issue{}, Suggestions: []string{}}
}

func (d *Decision) block(issue verdict.Issue, suggestion string) {
	d.Blockers = append(d.Blockers, issue)
	if suggestion != "" {
		d.Suggestions = append(d.Suggestions, suggestion)
	}
}

func (d *Decision) warn(issue verdict.Issue) {
	d.Warnings = append(d.Warnings, issue)
}

func (d *Decision) finish() Decision {
	d.CanDelete = len(d.Blockers) == 0
	return *d
}

// Allowed reports whether the guarded operation may proceed.
func (d Decision) Allowed() bool {
	return len(d.Blockers) == 0
}

// Verdict returns blockers as errors and warnings as warnings.
func (d Decision) Verdict() verdict.Verdict {
	out := verdict.New()
	out.Errors = append(out.Errors, d.Blockers...)
	out.Warnings = append(out.Warnings, d.Warnings...)
	return out
}

// Localize renders blocker and warning messages for locale.
func (d Decision) Localize(locale string) Decision {
	d.Blockers = verdict.LocalizeIssues(locale, d.Blockers)
	d.Warnings = verdict.LocalizeIssues(locale, d.Warnings)
	return d
}
