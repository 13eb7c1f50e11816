package usecase

import "strings"

// genericPathnamePatterns are the fallback pathname rules, consulted only
// when a store-specific pathname pattern list produced nothing. Ordered from
// most to least specific.
var genericPathnamePatterns = []*Pattern{
	// Product path segments: /product/<slug>/<id>, /p/<id>, /dp/<id>, ...
	MustCompilePattern(`/(?:products|product|items|item|prod|pdp|dp|pd|p)/(?:[\w-]{1,40}/)?([a-z0-9][\w-]{2,23})`),
	// A whole path segment shaped like a two-part sku: /cn8490-100/
	MustCompilePattern(`/([a-z0-9]{2,12}-[a-z0-9]{1,11})(?:/|$)`),
	// A long numeric id at a segment or slug boundary: /some-product-123456789
	MustCompilePattern(`(?:^|[/-])([0-9]{6,14})(?:[/.]|$)`),
}

// genericSearchPattern is the single fallback query-string rule. Unlike the
// pathname fallback it always runs, even when store-specific search patterns
// matched.
var genericSearchPattern = MustCompilePattern(
	`(?:^|[?&])(?:product_?id|item_?id|variant|sku|pid|asin|id)=([\w-]{1,24})`,
)

// stripLeadingS removes IKEA's "s" article-number prefix ("s49428364" and
// "49428364" identify the same article).
func stripLeadingS(id string) string {
	return strings.TrimPrefix(id, "s")
}

// defaultStoreConfigs is the static per-merchant extraction table. All
// patterns are authored against lowercased pathname/search text; the table
// tests enforce the authoring rules (lowercase literals, at most two capture
// groups, no nested unbounded quantifiers, bounded execution time).
var defaultStoreConfigs = []*StoreConfig{
	{
		ID:     "amazon",
		Domain: "amazon.com",
		Aliases: []StoreAlias{
			{ID: "amazon-uk", Domain: "amazon.co.uk"},
			{ID: "amazon-ca", Domain: "amazon.ca"},
			{ID: "amazon-au", Domain: "amazon.com.au"},
		},
		PathnamePatterns: []*Pattern{
			MustCompilePattern(`/dp/([a-z0-9]{10})(?:/|$)`),
			MustCompilePattern(`/gp/product/([a-z0-9]{10})(?:/|$)`),
			MustCompilePattern(`/gp/aw/d/([a-z0-9]{10})(?:/|$)`),
		},
		SearchPatterns: []*Pattern{
			MustCompilePattern(`(?:^|[?&])asin=([a-z0-9]{10})`),
		},
	},
	{
		ID:     "walmart",
		Domain: "walmart.com",
		Aliases: []StoreAlias{
			{ID: "walmart-ca", Domain: "walmart.ca"},
		},
		PathnamePatterns: []*Pattern{
			MustCompilePattern(`/ip/(?:[\w-]{1,60}/)?([0-9]{5,12})(?:/|$)`),
		},
	},
	{
		ID:     "target",
		Domain: "target.com",
		PathnamePatterns: []*Pattern{
			MustCompilePattern(`/-/a-([0-9]{6,10})(?:/|$)`),
		},
		SearchPatterns: []*Pattern{
			MustCompilePattern(`(?:^|[?&])preselect=([0-9]{6,10})`),
		},
	},
	{
		ID:     "nike",
		Domain: "nike.com",
		PathnamePatterns: []*Pattern{
			// /t/<slug>-<style>/<style-color>, e.g. /t/air-max-90-mens-shoes-6n8tkb/cn8490-100
			MustCompilePattern(`/t/[\w-]{1,60}-([a-z0-9]{6})/([a-z0-9]{6}-[0-9]{3})`),
			MustCompilePattern(`/t/[\w-]{1,60}/([a-z0-9]{6}-[0-9]{3})`),
		},
	},
	{
		ID:     "gap",
		Domain: "gap.com",
		SearchPatterns: []*Pattern{
			MustCompilePattern(`(?:^|[?&])pid=([0-9]{6,12})`),
		},
	},
	{
		// Old Navy runs on gap.com infrastructure; the preserved-subdomain
		// rule in ParseDomain keeps it resolvable as its own store.
		ID:     "oldnavy",
		Domain: "oldnavy.gap.com",
		SearchPatterns: []*Pattern{
			MustCompilePattern(`(?:^|[?&])pid=([0-9]{6,12})`),
		},
	},
	{
		ID:     "etsy",
		Domain: "etsy.com",
		PathnamePatterns: []*Pattern{
			MustCompilePattern(`/listing/([0-9]{6,12})(?:/|$)`),
		},
	},
	{
		ID:     "ebay",
		Domain: "ebay.com",
		Aliases: []StoreAlias{
			{ID: "ebay-uk", Domain: "ebay.co.uk"},
			{ID: "ebay-au", Domain: "ebay.com.au"},
		},
		PathnamePatterns: []*Pattern{
			MustCompilePattern(`/itm/(?:[\w-]{1,60}/)?([0-9]{9,15})(?:/|$)`),
		},
		SearchPatterns: []*Pattern{
			MustCompilePattern(`(?:^|[?&])itm=([0-9]{9,15})`),
		},
	},
	{
		ID:     "bestbuy",
		Domain: "bestbuy.com",
		PathnamePatterns: []*Pattern{
			MustCompilePattern(`/site/[\w-]{1,60}/([0-9]{7})\.p`),
		},
		SearchPatterns: []*Pattern{
			MustCompilePattern(`(?:^|[?&])skuid=([0-9]{7})`),
		},
	},
	{
		ID:     "homedepot",
		Domain: "homedepot.com",
		PathnamePatterns: []*Pattern{
			MustCompilePattern(`/p/(?:[\w-]{1,60}/)?([0-9]{9})(?:/|$)`),
		},
	},
	{
		ID:     "lowes",
		Domain: "lowes.com",
		PathnamePatterns: []*Pattern{
			MustCompilePattern(`/pd/(?:[\w-]{1,60}/)?([0-9]{7,10})(?:/|$)`),
		},
	},
	{
		ID:     "costco",
		Domain: "costco.com",
		PathnamePatterns: []*Pattern{
			MustCompilePattern(`\.product\.([0-9]{9,12})\.html`),
		},
	},
	{
		ID:     "wayfair",
		Domain: "wayfair.com",
		PathnamePatterns: []*Pattern{
			MustCompilePattern(`/pdp/[\w-]{1,60}-([a-z0-9]{6,12})\.html`),
		},
	},
	{
		ID:     "sephora",
		Domain: "sephora.com",
		PathnamePatterns: []*Pattern{
			MustCompilePattern(`/product/[\w-]{1,60}-p([0-9]{5,9})(?:/|$)`),
		},
	},
	{
		ID:     "macys",
		Domain: "macys.com",
		SearchPatterns: []*Pattern{
			MustCompilePattern(`(?:^|[?&])id=([0-9]{5,9})`),
		},
	},
	{
		ID:     "nordstrom",
		Domain: "nordstrom.com",
		PathnamePatterns: []*Pattern{
			MustCompilePattern(`/s/(?:[\w-]{1,60}/)?([0-9]{7,8})(?:/|$)`),
		},
	},
	{
		ID:     "chewy",
		Domain: "chewy.com",
		PathnamePatterns: []*Pattern{
			MustCompilePattern(`/dp/([0-9]{5,8})(?:/|$)`),
		},
	},
	{
		ID:     "ikea",
		Domain: "ikea.com",
		PathnamePatterns: []*Pattern{
			MustCompilePattern(`/p/[\w-]{1,60}-([a-z0-9]{8,9})(?:/|$)`),
		},
		TransformID: stripLeadingS,
	},
}

// NewDefaultStoreRegistry builds the registry from the static table. The
// table is validated by its test suite; an authoring error that slips through
// is unrecoverable at runtime, so this panics rather than limping along.
func NewDefaultStoreRegistry() *StoreRegistry {
	r, err := NewStoreRegistry(defaultStoreConfigs)
	if err != nil {
		panic(err)
	}
	return r
}
