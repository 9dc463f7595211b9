package email

import (
	"testing"

	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
)

func TestIsDisposableDomain(t *testing.T) {
	tests := []struct {
		domain string
		want   bool
	}{
		{domain: "mailinator.com", want: true},
		{domain: "MAILINATOR.COM", want: true},
		{domain: "inbox.mailinator.com", want: true},
		{domain: "a.b.guerrillamail.net", want: true},
		{domain: "tempinbox.xyz", want: true},
		{domain: "mail.tempbox.co.uk", want: true},
		{domain: "mythrowawaybox.net", want: true},
		{domain: "supertrashmail.org", want: true},
		{domain: "temple.edu", want: false},
		{domain: "cs.temple.edu", want: false},
		{domain: "temporal.io", want: false},
		{domain: "example.com", want: false},
		{domain: "gmail.com", want: false},
		{domain: "notmailinator.com", want: true},
		{domain: "localhost", want: false},
		{domain: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.domain, func(t *testing.T) {
			if got := IsDisposableDomain(tt.domain); got != tt.want {
				t.Fatalf("IsDisposableDomain(%q) = %t, want %t", tt.domain, got, tt.want)
			}
		})
	}
}

func TestSafeListWinsOverPatterns(t *testing.T) {
	for domain := range safeListedDomains {
		if IsDisposableDomain(domain) {
			t.Fatalf("safe-listed %q classified as disposable", domain)
		}
	}
}

func TestSplitAndValid(t *testing.T) {
	tests := []struct {
		address string
		local   string
		domain  string
		ok      bool
	}{
		{address: "ada@example.com", local: "ada", domain: "example.com", ok: true},
		{address: " Ada@Example.COM ", local: "Ada", domain: "example.com", ok: true},
		{address: "ana@münchen.de", local: "ana", domain: "xn--mnchen-3ya.de", ok: true},
		{address: "no-at-sign"},
		{address: "ada@localhost"},
		{address: "Ada <ada@example.com>"},
		{address: "ada@@example.com"},
		{address: "ada@example..com"},
		{address: ""},
	}
	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			local, domain, ok := Split(tt.address)
			if ok != tt.ok {
				t.Fatalf("Split(%q) ok = %t, want %t", tt.address, ok, tt.ok)
			}
			if Valid(tt.address) != tt.ok {
				t.Fatalf("Valid(%q) disagrees with Split", tt.address)
			}
			if ok && (local != tt.local || domain != tt.domain) {
				t.Fatalf("Split(%q) = %q/%q, want %q/%q", tt.address, local, domain, tt.local, tt.domain)
			}
		})
	}
}

func TestRegistrableDomain(t *testing.T) {
	tests := map[string]string{
		"mail.example.co.uk": "example.co.uk",
		"a.b.example.com":    "example.com",
		"example.com":        "example.com",
	}
	for domain, want := range tests {
		if got := RegistrableDomain(domain); got != want {
			t.Fatalf("RegistrableDomain(%q) = %q, want %q", domain, got, want)
		}
	}
}

func TestAssess(t *testing.T) {
	tests := []struct {
		name       string
		address    string
		valid      bool
		errCode    apperrors.Code
		warnCode   apperrors.Code
		safeListed bool
	}{
		{name: "ordinary", address: "ada@example.com", valid: true},
		{name: "safe listed", address: "student@temple.edu", valid: true, safeListed: true},
		{name: "disposable", address: "ada@yopmail.com", errCode: apperrors.CodeEmailDisposable},
		{name: "malformed", address: "ada.example.com", errCode: apperrors.CodeEmailInvalid},
		{name: "role address", address: "support+events@example.com", valid: true, warnCode: apperrors.CodeEmailRoleAddress},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Assess(tt.address)
			if got.Verdict.IsValid() != tt.valid {
				t.Fatalf("valid = %t, want %t (%+v)", got.Verdict.IsValid(), tt.valid, got.Verdict.Errors)
			}
			if tt.errCode != "" && !got.Verdict.HasError(tt.errCode) {
				t.Fatalf("expected error %s, got %+v", tt.errCode, got.Verdict.Errors)
			}
			if tt.warnCode != "" && !got.Verdict.HasWarning(tt.warnCode) {
				t.Fatalf("expected warning %s, got %+v", tt.warnCode, got.Verdict.Warnings)
			}
			if got.SafeListed != tt.safeListed {
				t.Fatalf("safe listed = %t, want %t", got.SafeListed, tt.safeListed)
			}
		})
	}
}

func TestAssessLocalizes(t *testing.T) {
	got := Assess("ada@mailinator.com").Verdict.Localize("pt-BR")
	if len(got.Errors) != 1 || got.Errors[0].Message != "Endereços de e-mail descartáveis não são permitidos" {
		t.Fatalf("localized errors = %+v", got.Errors)
	}
}
