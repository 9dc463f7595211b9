package email

import "strings"

var disposableDomains = map[string]struct{}{
	"10minutemail.com":  {},
	"burnermail.io":     {},
	"dispostable.com":   {},
	"emailondeck.com":   {},
	"fakeinbox.com":     {},
	"getnada.com":       {},
	"guerrillamail.com": {},
	"guerrillamail.net": {},
	"mailinator.com":    {},
	"maildrop.cc":       {},
	"mailnesia.com":     {},
	"mohmal.com":        {},
	"mytemp.email":      {},
	"sharklasers.com":   {},
	"spamgourmet.com":   {},
	"temp-mail.org":     {},
	"tempail.com":       {},
	"tempmail.com":      {},
	"throwawaymail.com": {},
	"trashmail.com":     {},
	"yopmail.com":       {},
}

// safeListedDomains are never disposable, even when a pattern matches.
var safeListedDomains = map[string]struct{}{
	"gmail.com":      {},
	"googlemail.com": {},
	"hotmail.com":    {},
	"icloud.com":     {},
	"live.com":       {},
	"me.com":         {},
	"outlook.com":    {},
	"proton.me":      {},
	"protonmail.com": {},
	"temple.edu":     {},
	"temporal.io":    {},
	"tempus.com":     {},
	"yahoo.com":      {},
}

var (
	disposablePrefixes  = []string{"temp", "trash", "throwaway", "10minute", "burner"}
	disposableFragments = []string{"throwaway", "trashmail", "disposable", "guerrilla", "mailinator", "fakeinbox", "spambox"}
)

var roleLocals = map[string]struct{}{
	"abuse":      {},
	"admin":      {},
	"contact":    {},
	"info":       {},
	"no-reply":   {},
	"noreply":    {},
	"postmaster": {},
	"sales":      {},
	"support":    {},
	"webmaster":  {},
}

// IsSafeListed reports whether domain or its registrable domain is on the
// safe list.
func IsSafeListed(domain string) bool {
	normalized, ok := NormalizeDomain(domain)
	if !ok {
		return false
	}
	if _, ok := safeListedDomains[normalized]; ok {
		return true
	}
	_, ok = safeListedDomains[RegistrableDomain(normalized)]
	return ok
}

// IsDisposableDomain reports whether domain belongs to a disposable mail
// provider. It matches the exact domain, any parent domain, and name
// patterns on the registrable label. Safe-listed domains always win.
func IsDisposableDomain(domain string) bool {
	normalized, ok := NormalizeDomain(domain)
	if !ok {
		return false
	}
	if IsSafeListed(normalized) {
		return false
	}
	labels := strings.Split(normalized, ".")
	for i := range labels {
		if _, ok := disposableDomains[strings.Join(labels[i:], ".")]; ok {
			return true
		}
	}
	return matchesDisposablePattern(registrableLabel(normalized))
}

func registrableLabel(domain string) string {
	registrable := RegistrableDomain(domain)
	if i := strings.Index(registrable, "."); i > 0 {
		return registrable[:i]
	}
	return registrable
}

func matchesDisposablePattern(label string) bool {
	for _, prefix := range disposablePrefixes {
		if strings.HasPrefix(label, prefix) {
			return true
		}
	}
	for _, fragment := range disposableFragments {
		if strings.Contains(label, fragment) {
			return true
		}
	}
	return false
}

func isRoleLocal(local string) bool {
	base := strings.ToLower(local)
	if i := strings.Index(base, "+"); i >= 0 {
		base = base[:i]
	}
	_, ok := roleLocals[base]
	return ok
}
