package domain

// URLComponents is the canonical breakdown of a normalized product URL.
// Created fresh per call and never mutated afterwards.
type URLComponents struct {
	// Href is the normalized, lowercased URL with tracking parameters
	// stripped and the scheme forced to https.
	Href string `json:"href"`

	// Hostname is the normalized host as parsed from the URL (no port).
	Hostname string `json:"hostname"`

	// Pathname is the lowercased path component.
	Pathname string `json:"pathname"`

	// Search is the lowercased query string without the leading "?".
	Search string `json:"search"`

	// Domain is the resolved base domain (e.g. "nike.com" for "shop.nike.com").
	Domain string `json:"domain"`

	// Key is a 16-character URL-safe hash of domain+pathname+search,
	// suitable as a cache or storage key.
	Key string `json:"key"`

	// Original is the exact input string before normalization, kept for diagnostics.
	Original string `json:"original"`
}

// ExtractionResult pairs the parsed URL components with the product ids
// extracted from them.
type ExtractionResult struct {
	URLComponents URLComponents `json:"urlComponents"`
	ProductIDs    ProductIDs    `json:"productIds"`
	Source        string        `json:"source"` // "extractor" or "cache"
}
