package usecase

import (
	"fmt"
	"strings"
)

// TransformFunc rewrites an id extracted by a store's patterns, e.g. to strip
// a merchant-specific prefix. Implementations must be pure string mappings:
// no I/O, no panics.
type TransformFunc func(id string) string

// StoreAlias is an alternate id/domain pair that resolves to an existing
// store's configuration. Stores accumulate aliases when merchants rebrand or
// operate regional domains.
type StoreAlias struct {
	ID     string
	Domain string
}

// StoreConfig holds the per-merchant extraction rules. Configs are immutable
// for the life of the process.
//
// Pattern authoring rules, enforced by the table tests rather than at request
// time: literals must be lowercase (source text is lowercased before matching,
// not matched case-insensitively), at most two capturing groups, no nested
// unbounded quantifiers, bounded character classes.
type StoreConfig struct {
	ID               string
	Domain           string
	Aliases          []StoreAlias
	PathnamePatterns []*Pattern
	SearchPatterns   []*Pattern
	TransformID      TransformFunc
}

// StoreRegistry resolves store ids and domains to their configuration via two
// read-only indices built once from the config table, aliases included.
type StoreRegistry struct {
	byID     map[string]*StoreConfig
	byDomain map[string]string // domain -> canonical id
}

// StoreLookup identifies a store by id, domain, or both. A provided ID takes
// priority over the domain.
type StoreLookup struct {
	ID     string
	Domain string
}

// NewStoreRegistry builds the id and domain indices from the given configs.
// A duplicate id or domain across configs is a configuration-authoring error.
func NewStoreRegistry(configs []*StoreConfig) (*StoreRegistry, error) {
	r := &StoreRegistry{
		byID:     make(map[string]*StoreConfig, len(configs)),
		byDomain: make(map[string]string, len(configs)),
	}

	for _, cfg := range configs {
		if cfg.ID == "" || cfg.Domain == "" {
			return nil, fmt.Errorf("store config must have an id and a domain, got id=%q domain=%q", cfg.ID, cfg.Domain)
		}
		if err := r.index(cfg.ID, cfg.Domain, cfg); err != nil {
			return nil, err
		}
		for _, alias := range cfg.Aliases {
			if err := r.index(alias.ID, alias.Domain, cfg); err != nil {
				return nil, err
			}
		}
	}

	return r, nil
}

func (r *StoreRegistry) index(id, domainName string, cfg *StoreConfig) error {
	id = strings.ToLower(id)
	domainName = strings.ToLower(domainName)

	if id != "" {
		if _, exists := r.byID[id]; exists {
			return fmt.Errorf("duplicate store id %q", id)
		}
		r.byID[id] = cfg
	}
	if domainName != "" {
		if _, exists := r.byDomain[domainName]; exists {
			return fmt.Errorf("duplicate store domain %q", domainName)
		}
		r.byDomain[domainName] = strings.ToLower(cfg.ID)
	}
	return nil
}

// GetStoreConfig resolves a lookup to a store configuration. An id lookup is
// tried first; an unresolved id falls through to the domain index. A nil
// return is not an error: it signals "no store-specific rules, use the
// generic patterns".
func (r *StoreRegistry) GetStoreConfig(lookup StoreLookup) *StoreConfig {
	if lookup.ID != "" {
		if cfg, ok := r.byID[strings.ToLower(lookup.ID)]; ok {
			return cfg
		}
	}
	if lookup.Domain != "" {
		if id, ok := r.byDomain[strings.ToLower(lookup.Domain)]; ok {
			return r.byID[id]
		}
	}
	return nil
}

// Len returns the number of distinct store ids the registry resolves,
// aliases included.
func (r *StoreRegistry) Len() int {
	return len(r.byID)
}
