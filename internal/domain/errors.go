package domain

import "errors"

var (
	// ErrEmptyURL is returned when the input URL string is empty
	ErrEmptyURL = errors.New("url must be a non-empty string")

	// ErrURLParse is returned when a URL cannot be normalized into a well-formed URL
	ErrURLParse = errors.New("url could not be parsed")

	// ErrUnsupportedScheme is returned when a URL uses a non-HTTP(S) scheme
	ErrUnsupportedScheme = errors.New("only http and https urls are supported")

	// ErrInvalidHostname is returned when a hostname is empty or malformed
	ErrInvalidHostname = errors.New("hostname is empty or malformed")

	// ErrBlockedHost is returned when a host is private, loopback, or otherwise disallowed
	ErrBlockedHost = errors.New("host is not publicly reachable")

	// ErrInvalidProductID signals an extracted id outside the declared output bounds.
	// This indicates a bug in a store's pattern or transform configuration,
	// not a runtime or user error.
	ErrInvalidProductID = errors.New("extracted product id violates output bounds")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
