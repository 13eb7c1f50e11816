package http

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"

	"github.com/shoplens/backend/internal/domain"
)

// blockedHostSuffixes are name suffixes that never identify a public site.
var blockedHostSuffixes = []string{".local", ".internal", ".localdomain"}

// ValidateRequestURL screens a caller-supplied URL before it reaches the
// extraction core: only public HTTP(S) URLs pass. The core assumes its input
// has been screened here.
func ValidateRequestURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.ErrEmptyURL
	}

	withScheme := trimmed
	if !strings.Contains(withScheme, "://") {
		withScheme = "https://" + withScheme
	}

	parsed, err := url.Parse(withScheme)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrURLParse, err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return domain.ErrUnsupportedScheme
	}

	host := strings.ToLower(parsed.Hostname())
	if host == "" {
		return fmt.Errorf("%w: missing host", domain.ErrURLParse)
	}

	return validateHost(host)
}

// validateHost rejects hosts that are not publicly resolvable merchant sites:
// IP literals, localhost, internal-only suffixes, and names with no
// registrable domain under the public suffix list.
func validateHost(host string) error {
	if ip := net.ParseIP(host); ip != nil {
		// Product URLs live on hostnames; any IP literal is suspect, and
		// private/loopback ranges are outright dangerous to fetch.
		return fmt.Errorf("%w: ip literal %q", domain.ErrBlockedHost, host)
	}

	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return fmt.Errorf("%w: %q", domain.ErrBlockedHost, host)
	}
	for _, suffix := range blockedHostSuffixes {
		if strings.HasSuffix(host, suffix) {
			return fmt.Errorf("%w: %q", domain.ErrBlockedHost, host)
		}
	}

	if _, err := publicsuffix.EffectiveTLDPlusOne(host); err != nil {
		// Bare TLDs and single-label names have no registrable domain.
		return fmt.Errorf("%w: %q", domain.ErrInvalidHostname, host)
	}

	return nil
}
