// Package admission combines the pure lifecycle guards with the external
// checks a request passes before it reaches them: the rate-limit gate and
// the mail reachability oracle.
package admission

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
	"github.com/louisbranch/hackathon.space/internal/platform/timeouts"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/email"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

// Action names a gated request kind.
type Action string

const (
	ActionOTP              Action = "otp"
	ActionRegistration     Action = "registration"
	ActionSubmissionCreate Action = "submission_create"
)

// Gate is an opaque rate limiter consulted before a guard runs.
type Gate interface {
	Allow(ctx context.Context, action Action, key string) (bool, error)
}

// MailOracle reports whether a domain can receive mail, typically through
// an MX lookup.
type MailOracle interface {
	CanReceiveMail(ctx context.Context, domain string) (bool, error)
}

// GateFunc adapts a function to Gate.
type GateFunc func(ctx context.Context, action Action, key string) (bool, error)

// Allow calls f.
func (f GateFunc) Allow(ctx context.Context, action Action, key string) (bool, error) {
	return f(ctx, action, key)
}

// MailOracleFunc adapts a function to MailOracle.
type MailOracleFunc func(ctx context.Context, domain string) (bool, error)

// CanReceiveMail calls f.
func (f MailOracleFunc) CanReceiveMail(ctx context.Context, domain string) (bool, error) {
	return f(ctx, domain)
}

// CheckGate returns a RATE_LIMITED domain error when gate refuses the
// request. A nil gate admits everything.
func CheckGate(ctx context.Context, gate Gate, action Action, key string) error {
	if gate == nil {
		return nil
	}
	allowed, err := gate.Allow(ctx, action, strings.TrimSpace(key))
	if err != nil {
		return fmt.Errorf("rate limit %s: %w", action, err)
	}
	if !allowed {
		return apperrors.WithMetadata(apperrors.CodeRateLimited, "Too many requests. Try again later",
			map[string]string{"Action": string(action)})
	}
	return nil
}

// AdmitEmail judges address and, when the pure assessment passes, asks the
// oracle whether the domain can receive mail. Safe-listed domains skip the
// oracle. The lookup is bounded by timeouts.MailLookup and a failure is
// returned as an error rather than an issue.
func AdmitEmail(ctx context.Context, address string, oracle MailOracle) (verdict.Verdict, error) {
	assessment := email.Assess(address)
	result := assessment.Verdict
	if !result.IsValid() || assessment.SafeListed || oracle == nil {
		return result, nil
	}
	lookupCtx, cancel := context.WithTimeout(ctx, timeouts.MailLookup)
	defer cancel()
	reachable, err := oracle.CanReceiveMail(lookupCtx, assessment.Domain)
	if err != nil {
		return result, fmt.Errorf("check mail domain %s: %w", assessment.Domain, err)
	}
	if !reachable {
		result.AddError(apperrors.CodeEmailUndeliverable, "email",
			"Email domain "+assessment.Domain+" cannot receive mail",
			map[string]string{"Domain": assessment.Domain})
	}
	return result, nil
}
