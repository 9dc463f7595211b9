package submission

import (
	"net/netip"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/publicsuffix"

	apperrors "github.com/louisbranch/hackathon.space/internal/platform/errors"
	"github.com/louisbranch/hackathon.space/internal/services/hackathon/domain/verdict"
)

const (
	MinNameLength        = 3
	MaxNameLength        = 100
	MinDescriptionLength = 10
	MaxDescriptionLength = 5000
	MaxURLLength         = 2000
	MaxTechnologies      = 20
)

// provider lists the registrable domains a link field is expected to use.
type provider struct {
	name    string
	domains []string
}

var (
	repositoryProvider = &provider{name: "GitHub", domains: []string{"github.com"}}
	videoProvider      = &provider{name: "YouTube, Vimeo or Loom", domains: []string{"youtube.com", "youtu.be", "vimeo.com", "loom.com"}}
)

var placeholderPattern = regexp.MustCompile(`(?i)\b(lorem ipsum|test|testing|fake|placeholder|dummy|asdf|foo bar)\b`)

// ValidateData checks submission content. Content screening only warns.
func ValidateData(data Data) verdict.Verdict {
	result := verdict.New()
	checkLength(&result, apperrors.CodeSubmissionNameLength, "name", "Project name", data.Name, MinNameLength, MaxNameLength)
	checkLength(&result, apperrors.CodeSubmissionDescriptionLength, "description", "Description", data.Description, MinDescriptionLength, MaxDescriptionLength)

	checkURL(&result, "repository_url", data.RepositoryURL, repositoryProvider)
	checkURL(&result, "demo_url", data.DemoURL, nil)
	checkURL(&result, "video_url", data.VideoURL, videoProvider)
	checkURL(&result, "presentation_url", data.PresentationURL, nil)

	checkTechnologies(&result, data.Technologies)

	for _, field := range []struct{ name, value string }{
		{name: "name", value: data.Name},
		{name: "description", value: data.Description},
	} {
		if placeholderPattern.MatchString(field.value) {
			result.AddWarning(apperrors.CodeSubmissionPlaceholder, field.name,
				field.name+" looks like placeholder content",
				map[string]string{"Field": field.name})
		}
	}
	return result
}

func checkLength(result *verdict.Verdict, code apperrors.Code, field, label, value string, minLength, maxLength int) {
	length := utf8.RuneCountInString(strings.TrimSpace(value))
	if length >= minLength && length <= maxLength {
		return
	}
	lo, hi := strconv.Itoa(minLength), strconv.Itoa(maxLength)
	result.AddError(code, field,
		label+" must be between "+lo+" and "+hi+" characters",
		map[string]string{"Min": lo, "Max": hi})
}

// checkURL validates one optional link field independently of the others.
func checkURL(result *verdict.Verdict, field, raw string, expected *provider) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	meta := map[string]string{"Field": field}
	if len(raw) > MaxURLLength {
		result.AddError(apperrors.CodeSubmissionURLTooLong, field,
			field+" must be at most "+strconv.Itoa(MaxURLLength)+" characters",
			map[string]string{"Field": field, "Max": strconv.Itoa(MaxURLLength)})
		return
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		result.AddError(apperrors.CodeSubmissionURLInvalid, field, field+" is not a valid URL", meta)
		return
	}
	scheme := strings.ToLower(parsed.Scheme)
	if scheme != "http" && scheme != "https" {
		result.AddError(apperrors.CodeSubmissionURLScheme, field, field+" must use http or https", meta)
		return
	}
	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		result.AddError(apperrors.CodeSubmissionURLInvalid, field, field+" is not a valid URL", meta)
		return
	}
	if privateHost(host) {
		result.AddWarning(apperrors.CodeSubmissionURLPrivateHost, field,
			field+" points to a private or local address", meta)
		return
	}
	if expected != nil && !expected.matches(host) {
		result.AddWarning(apperrors.CodeSubmissionURLProvider, field,
			field+" is expected to be a "+expected.name+" link",
			map[string]string{"Field": field, "Provider": expected.name})
	}
}

func privateHost(host string) bool {
	if host == "localhost" || strings.HasSuffix(host, ".localhost") || strings.HasSuffix(host, ".local") || strings.HasSuffix(host, ".internal") {
		return true
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	return addr.IsLoopback() || addr.IsPrivate() || addr.IsLinkLocalUnicast() || addr.IsUnspecified()
}

func (p *provider) matches(host string) bool {
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		registrable = host
	}
	for _, domain := range p.domains {
		if registrable == domain {
			return true
		}
	}
	return false
}

func checkTechnologies(result *verdict.Verdict, technologies []string) {
	if len(technologies) > MaxTechnologies {
		result.AddError(apperrors.CodeSubmissionTooManyTechnologies, "technologies",
			"At most "+strconv.Itoa(MaxTechnologies)+" technologies can be listed",
			map[string]string{"Max": strconv.Itoa(MaxTechnologies)})
	}
	seen := make(map[string]bool, len(technologies))
	reportedEmpty := false
	for i, technology := range technologies {
		trimmed := strings.TrimSpace(technology)
		field := "technologies[" + strconv.Itoa(i) + "]"
		if trimmed == "" {
			if !reportedEmpty {
				result.AddError(apperrors.CodeSubmissionEmptyTechnology, field, "Technology names cannot be empty", nil)
				reportedEmpty = true
			}
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			result.AddWarning(apperrors.CodeSubmissionDuplicateTechnology, field,
				"Technology \""+trimmed+"\" is listed more than once",
				map[string]string{"Technology": trimmed})
			continue
		}
		seen[key] = true
	}
}
