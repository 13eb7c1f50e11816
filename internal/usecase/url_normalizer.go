package usecase

import (
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

// trackingParams are query parameters that carry no product semantics and are
// stripped during normalization so that the same product page always yields
// the same href and key.
var trackingParams = map[string]struct{}{
	"utm_source": {}, "utm_medium": {}, "utm_campaign": {}, "utm_term": {}, "utm_content": {},
	"gclid": {}, "fbclid": {}, "msclkid": {}, "ttclid": {}, "igshid": {},
	"mc_cid": {}, "mc_eid": {},
	"ref": {}, "ref_": {}, "tag": {}, "affid": {}, "cmpid": {},
}

// urlKeyReplacer swaps the base64 characters that are unsafe in URLs and
// filenames for safe substitutes.
var urlKeyReplacer = strings.NewReplacer("+", "-", "/", "_", "=", "")

// ParseURLComponents normalizes a raw URL string into its canonical components.
// Normalization lowercases the URL, forces the https scheme, drops the
// fragment and default port, and strips tracking parameters. The same input
// always yields the same Href and Key.
func ParseURLComponents(raw string) (*domain.URLComponents, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, domain.ErrEmptyURL
	}

	// url.Parse treats "nike.com/p/1" as a bare path, so a missing scheme
	// must be supplied before parsing for the host to be recognized.
	withScheme := trimmed
	if !strings.Contains(withScheme, "://") {
		withScheme = "https://" + withScheme
	}

	parsed, err := url.Parse(withScheme)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrURLParse, err)
	}

	switch strings.ToLower(parsed.Scheme) {
	case "http", "https":
	default:
		return nil, domain.ErrUnsupportedScheme
	}

	hostname := strings.ToLower(parsed.Hostname())
	if hostname == "" {
		return nil, fmt.Errorf("%w: missing host in %q", domain.ErrURLParse, raw)
	}

	baseDomain, err := ParseDomain(hostname)
	if err != nil {
		return nil, err
	}

	pathname := strings.ToLower(parsed.EscapedPath())
	search := normalizeQuery(parsed.Query())

	href := "https://" + hostname + pathname
	if search != "" {
		href += "?" + search
	}

	return &domain.URLComponents{
		Href:     href,
		Hostname: hostname,
		Pathname: pathname,
		Search:   search,
		Domain:   baseDomain,
		Key:      CreateURLKey(baseDomain + pathname + search),
		Original: raw,
	}, nil
}

// normalizeQuery lowercases the query string, drops tracking parameters, and
// re-encodes with sorted keys so the output is deterministic.
func normalizeQuery(values url.Values) string {
	cleaned := url.Values{}
	for key, vals := range values {
		lowerKey := strings.ToLower(key)
		if _, drop := trackingParams[lowerKey]; drop {
			continue
		}
		for _, v := range vals {
			cleaned.Add(lowerKey, strings.ToLower(v))
		}
	}
	return cleaned.Encode()
}

// CreateURLKey returns a deterministic 16-character URL-safe key for the
// input: sha1, base64, unsafe characters replaced, truncated. The truncation
// keeps 96 bits, so collisions sit at the birthday bound of a 96-bit hash.
func CreateURLKey(input string) string {
	sum := sha1.Sum([]byte(input))
	encoded := urlKeyReplacer.Replace(base64.StdEncoding.EncodeToString(sum[:]))
	return encoded[:16]
}
