package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/shoplens/backend/internal/domain"
	"github.com/shoplens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	extractor        *usecase.ExtractorService
	maxBatchURLs     int
	batchConcurrency int
}

// NewHandler creates a new HTTP handler
func NewHandler(extractor *usecase.ExtractorService, maxBatchURLs, batchConcurrency int) *Handler {
	if maxBatchURLs <= 0 {
		maxBatchURLs = 50
	}
	if batchConcurrency <= 0 {
		batchConcurrency = 8
	}
	return &Handler{
		extractor:        extractor,
		maxBatchURLs:     maxBatchURLs,
		batchConcurrency: batchConcurrency,
	}
}

// extractRequest is the body of a single extraction request
type extractRequest struct {
	URL     string `json:"url" binding:"required"`
	StoreID string `json:"storeId"`
}

// batchExtractRequest is the body of a batch extraction request
type batchExtractRequest struct {
	URLs    []string `json:"urls" binding:"required"`
	StoreID string   `json:"storeId"`
}

// batchEntry is one per-URL result inside a batch response. Either ProductIDs
// or Error is set; one bad URL never fails the batch.
type batchEntry struct {
	URL        string            `json:"url"`
	ProductIDs domain.ProductIDs `json:"productIds,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shoplens-backend",
		"version": "1.0.0",
	})
}

// ExtractProductIDs handles a single URL extraction request
func (h *Handler) ExtractProductIDs(c *gin.Context) {
	var req extractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}

	if err := ValidateRequestURL(req.URL); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	result, err := h.extractor.ExtractFromURL(c.Request.Context(), req.URL, req.StoreID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

// BatchExtractProductIDs extracts ids for up to maxBatchURLs URLs in one
// request. Extractions are independent, so they fan out across a bounded
// worker group.
func (h *Handler) BatchExtractProductIDs(c *gin.Context) {
	var req batchExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "urls is required"})
		return
	}

	if len(req.URLs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "urls must not be empty"})
		return
	}
	if len(req.URLs) > h.maxBatchURLs {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "too many urls in one batch",
			"max":   h.maxBatchURLs,
		})
		return
	}

	entries := make([]batchEntry, len(req.URLs))

	group, ctx := errgroup.WithContext(c.Request.Context())
	group.SetLimit(h.batchConcurrency)

	for i, rawURL := range req.URLs {
		i, rawURL := i, rawURL
		group.Go(func() error {
			entries[i] = batchEntry{URL: rawURL}

			if err := ValidateRequestURL(rawURL); err != nil {
				entries[i].Error = err.Error()
				return nil
			}

			result, err := h.extractor.ExtractFromURL(ctx, rawURL, req.StoreID)
			if err != nil {
				entries[i].Error = err.Error()
				return nil
			}

			entries[i].ProductIDs = result.ProductIDs
			return nil
		})
	}

	// Workers never return errors; Wait only fences the goroutines.
	_ = group.Wait()

	c.JSON(http.StatusOK, gin.H{"results": entries})
}

// statusForError maps domain errors to HTTP status codes. Input errors are
// the caller's fault; an output-bounds violation is ours.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrEmptyURL),
		errors.Is(err, domain.ErrURLParse),
		errors.Is(err, domain.ErrUnsupportedScheme),
		errors.Is(err, domain.ErrInvalidHostname),
		errors.Is(err, domain.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrBlockedHost):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
