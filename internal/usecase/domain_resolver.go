package usecase

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

// multiPartTLDs are country-code TLDs that occupy the last two hostname
// labels, so the base domain needs three labels instead of two.
var multiPartTLDs = map[string]struct{}{
	"co.uk": {}, "org.uk": {}, "ac.uk": {},
	"com.au": {}, "net.au": {}, "org.au": {},
	"co.jp": {}, "co.kr": {}, "co.nz": {}, "co.in": {}, "co.za": {},
	"com.br": {}, "com.mx": {}, "com.sg": {}, "com.hk": {}, "com.tw": {},
	"com.tr": {}, "com.cn": {},
}

// preservedSubdomains are sub-brand labels that must stay distinguishable
// even though they operate under a shared parent domain. All other subdomain
// labels (www, m, mobile, regional prefixes) simply fall outside the computed
// base domain and are dropped without being listed here.
var preservedSubdomains = map[string]struct{}{
	"oldnavy":        {},
	"bananarepublic": {},
	"athleta":        {},
}

// hostnameLabelPattern accepts a single DNS label: alphanumeric with interior hyphens.
var hostnameLabelPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// ParseDomain resolves a hostname to its base domain. Multi-part country-code
// TLDs keep three labels ("example.co.uk"), everything else keeps two
// ("nike.com"). A preserved sub-brand label outside the base domain is
// prepended ("oldnavy.gap.com").
func ParseDomain(hostname string) (string, error) {
	host := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(hostname)), ".")
	if host == "" {
		return "", domain.ErrInvalidHostname
	}

	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return "", fmt.Errorf("%w: %q has no registrable domain", domain.ErrInvalidHostname, hostname)
	}
	for _, label := range labels {
		if !hostnameLabelPattern.MatchString(label) {
			return "", fmt.Errorf("%w: bad label in %q", domain.ErrInvalidHostname, hostname)
		}
	}

	baseLen := 2
	if len(labels) >= 3 {
		lastTwo := labels[len(labels)-2] + "." + labels[len(labels)-1]
		if _, ok := multiPartTLDs[lastTwo]; ok {
			baseLen = 3
		}
	}
	if baseLen > len(labels) {
		baseLen = len(labels)
	}
	baseDomain := strings.Join(labels[len(labels)-baseLen:], ".")

	for _, label := range labels[:len(labels)-baseLen] {
		if _, ok := preservedSubdomains[label]; ok {
			return label + "." + baseDomain, nil
		}
	}

	return baseDomain, nil
}
