// Package email judges the quality of an email address without network
// access: syntax, disposable-provider heuristics, and role addresses.
package email

import (
	"net/mail"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"

	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

const (
	maxAddressLength = 254
	maxLocalLength   = 64
)

// Assessment is the pure judgement of one address.
type Assessment struct {
	Address     string          `json:"address"`
	Local       string          `json:"local,omitempty"`
	Domain      string          `json:"domain,omitempty"`
	Registrable string          `json:"registrable,omitempty"`
	Disposable  bool            `json:"disposable"`
	SafeListed  bool            `json:"safe_listed"`
	RoleAddress bool            `json:"role_address"`
	Verdict     verdict.Verdict `json:"verdict"`
}

// Split separates a bare address into its local part and normalized domain.
// Display names and angle brackets are rejected.
func Split(address string) (string, string, bool) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" || len(trimmed) > maxAddressLength {
		return "", "", false
	}
	parsed, err := mail.ParseAddress(trimmed)
	if err != nil || parsed.Name != "" || parsed.Address != trimmed {
		return "", "", false
	}
	at := strings.LastIndex(trimmed, "@")
	local := trimmed[:at]
	if local == "" || len(local) > maxLocalLength {
		return "", "", false
	}
	domain, ok := NormalizeDomain(trimmed[at+1:])
	if !ok {
		return "", "", false
	}
	return local, domain, true
}

// Valid reports whether address is a well-formed bare address with a
// dotted domain.
func Valid(address string) bool {
	_, _, ok := Split(address)
	return ok
}

// NormalizeDomain lowercases a domain and converts it to its ASCII form.
// It requires at least two non-empty labels.
func NormalizeDomain(domain string) (string, bool) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(domain), ".")
	if trimmed == "" {
		return "", false
	}
	ascii, err := idna.Lookup.ToASCII(trimmed)
	if err != nil {
		return "", false
	}
	ascii = strings.ToLower(ascii)
	labels := strings.Split(ascii, ".")
	if len(labels) < 2 {
		return "", false
	}
	for _, label := range labels {
		if label == "" {
			return "", false
		}
	}
	return ascii, true
}

// RegistrableDomain reduces a normalized domain to the label directly under
// its public suffix, for example mail.example.co.uk to example.co.uk.
func RegistrableDomain(domain string) string {
	registrable, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		return domain
	}
	return registrable
}

// Assess judges address. Malformed and disposable addresses are errors;
// role addresses are warnings.
func Assess(address string) Assessment {
	assessment := Assessment{Address: strings.TrimSpace(address), Verdict: verdict.New()}
	local, domain, ok := Split(address)
	if !ok {
		assessment.Verdict.AddError(apperrors.CodeEmailInvalid, "email", "Email address is not valid", nil)
		return assessment
	}
	assessment.Local = local
	assessment.Domain = domain
	assessment.Registrable = RegistrableDomain(domain)
	assessment.SafeListed = IsSafeListed(domain)
	assessment.Disposable = IsDisposableDomain(domain)
	assessment.RoleAddress = isRoleLocal(local)

	if assessment.Disposable {
		assessment.Verdict.AddError(apperrors.CodeEmailDisposable, "email",
			"Disposable email addresses are not allowed", map[string]string{"Domain": domain})
	}
	if assessment.RoleAddress {
		assessment.Verdict.AddWarning(apperrors.CodeEmailRoleAddress, "email",
			"Role-based address "+assessment.Address+" may not reach a person",
			map[string]string{"Address": assessment.Address})
	}
	return assessment
}
