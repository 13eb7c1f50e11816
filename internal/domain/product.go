package domain

import (
	"regexp"
	"strings"
)

const (
	// MaxProductIDs caps how many ids a single extraction may return.
	MaxProductIDs = 12

	// MaxProductIDLength caps the length of a single extracted id.
	MaxProductIDLength = 24
)

// productIDPattern bounds every entry of a ProductIDs value.
var productIDPattern = regexp.MustCompile(`^[\w-]{1,24}$`)

// ProductIDs is a deduplicated, lowercased, sorted, length-bounded list of
// candidate product identifiers extracted from a URL. The order carries no
// meaning beyond the lexicographic sort of the final set.
type ProductIDs []string

// Validate checks the output bounds: at most MaxProductIDs entries, each
// lowercase, 1-24 characters of [\w-], sorted ascending with no duplicates.
// A failure here is a configuration defect, not a runtime error.
func (ids ProductIDs) Validate() error {
	if len(ids) > MaxProductIDs {
		return ErrInvalidProductID
	}
	for i, id := range ids {
		if !productIDPattern.MatchString(id) {
			return ErrInvalidProductID
		}
		if id != strings.ToLower(id) {
			return ErrInvalidProductID
		}
		if i > 0 && ids[i-1] >= id {
			return ErrInvalidProductID
		}
	}
	return nil
}
