package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shoplens/backend/internal/domain"
)

// ExtractorConfig holds tunables for the extractor service
type ExtractorConfig struct {
	PatternTimeout time.Duration
	CacheTTL       time.Duration
}

// ExtractorService turns URLs into product-id candidates. It is stateless
// apart from the immutable store registry and the optional result cache, so
// callers may invoke it concurrently.
type ExtractorService struct {
	registry       *StoreRegistry
	cache          domain.CacheRepository
	patternTimeout time.Duration
	cacheTTL       time.Duration
}

// NewExtractorService creates an extractor service. cache may be nil to
// disable result caching.
func NewExtractorService(registry *StoreRegistry, cache domain.CacheRepository, config ExtractorConfig) *ExtractorService {
	patternTimeout := config.PatternTimeout
	if patternTimeout <= 0 {
		patternTimeout = DefaultPatternTimeout
	}

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	return &ExtractorService{
		registry:       registry,
		cache:          cache,
		patternTimeout: patternTimeout,
		cacheTTL:       cacheTTL,
	}
}

// ExtractRequest identifies one extraction: parsed URL components plus an
// optional caller-supplied store id that overrides domain-based resolution.
type ExtractRequest struct {
	URLComponents *domain.URLComponents
	StoreID       string
}

// ExtractIDsFromURLComponents runs the documented extraction-order policy:
//
//  1. resolve the store config by explicit id first, then by domain;
//  2. run the store's pathname patterns against the pathname, applying the
//     store's id transform to every extracted id;
//  3. only if step 2 yielded nothing, fall back to the generic pathname
//     patterns (pathname permitting);
//  4. if a query string is present and the cap is not reached, run the
//     store's search patterns and then, unconditionally, the single generic
//     search pattern; search fallback is intentionally not exclusive the
//     way the pathname fallback is;
//  5. sort, and validate the output bounds.
//
// It never fails for a structurally valid input; the only returned error is
// an output-bounds violation, which signals a store configuration defect.
func (s *ExtractorService) ExtractIDsFromURLComponents(req ExtractRequest) (domain.ProductIDs, error) {
	if req.URLComponents == nil {
		return nil, domain.ErrInvalidRequest
	}

	uc := req.URLComponents
	results := make(map[string]struct{})

	cfg := s.lookupStore(uc.Domain, req.StoreID)

	if cfg != nil && len(cfg.PathnamePatterns) > 0 {
		s.runPatterns(cfg.PathnamePatterns, uc.Pathname, cfg.TransformID, results)
	}

	if len(results) == 0 && uc.Pathname != "" {
		s.runPatterns(genericPathnamePatterns, uc.Pathname, nil, results)
	}

	if uc.Search != "" && len(results) < domain.MaxProductIDs {
		if cfg != nil && len(cfg.SearchPatterns) > 0 {
			s.runPatterns(cfg.SearchPatterns, uc.Search, cfg.TransformID, results)
		}
		s.runPatterns([]*Pattern{genericSearchPattern}, uc.Search, nil, results)
	}

	ids := make(domain.ProductIDs, 0, len(results))
	for id := range results {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if err := ids.Validate(); err != nil {
		logrus.WithField("url", uc.Href).
			WithField("ids", ids).
			Error("extraction produced ids outside the output bounds")
		return nil, err
	}

	return ids, nil
}

// runPatterns scans source with each pattern in order, applying transform to
// every extracted id, until the result cap is reached.
func (s *ExtractorService) runPatterns(patterns []*Pattern, source string, transform TransformFunc, results map[string]struct{}) {
	for _, pattern := range patterns {
		if len(results) >= domain.MaxProductIDs {
			return
		}
		for id := range pattern.ExtractWithTimeout(source, s.patternTimeout) {
			if transform != nil {
				id = strings.ToLower(transform(id))
			}
			results[id] = struct{}{}
			if len(results) >= domain.MaxProductIDs {
				break
			}
		}
	}
}

// lookupStore resolves the store config, containing any fault in the lookup
// itself: a failure here degrades to "no store-specific rules" rather than
// aborting the extraction.
func (s *ExtractorService) lookupStore(domainName, storeID string) (cfg *StoreConfig) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("domain", domainName).
				WithField("storeId", storeID).
				WithField("panic", r).
				Debug("store lookup failed; falling back to generic patterns")
			cfg = nil
		}
	}()

	if s.registry == nil {
		return nil
	}
	return s.registry.GetStoreConfig(StoreLookup{ID: storeID, Domain: domainName})
}

// ExtractFromURL is the cached entry point: parse the URL, check the cache by
// the components' key, extract on a miss, and cache the result.
func (s *ExtractorService) ExtractFromURL(ctx context.Context, rawURL, storeID string) (*domain.ExtractionResult, error) {
	uc, err := ParseURLComponents(rawURL)
	if err != nil {
		return nil, err
	}

	cacheKey := extractionCacheKey(uc.Key, storeID)

	if s.cache != nil {
		if value, err := s.cache.Get(ctx, cacheKey); err == nil {
			if cached, ok := value.(*domain.ExtractionResult); ok {
				hit := *cached
				hit.Source = "cache"
				return &hit, nil
			}
		}
	}

	ids, err := s.ExtractIDsFromURLComponents(ExtractRequest{URLComponents: uc, StoreID: storeID})
	if err != nil {
		return nil, err
	}

	result := &domain.ExtractionResult{
		URLComponents: *uc,
		ProductIDs:    ids,
		Source:        "extractor",
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, result, s.cacheTTL); err != nil {
			logrus.WithError(err).WithField("key", cacheKey).Warn("failed to cache extraction result")
		}
	}

	return result, nil
}

// extractionCacheKey namespaces cached results; the explicit store id is part
// of the key because it changes which patterns run.
func extractionCacheKey(urlKey, storeID string) string {
	return "extract:" + urlKey + ":" + strings.ToLower(storeID)
}
