package config

import "errors"

// Configuration errors. Validate wraps these so callers can use errors.Is.
var (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrMalformedConfig is returned when the file cannot be read or decoded.
	ErrMalformedConfig = errors.New("malformed configuration")

	// ErrInvalidMaxDepth is returned when maxDepth is negative.
	ErrInvalidMaxDepth = errors.New("invalid maxDepth: must be non-negative")

	// ErrInvalidTimeout is returned when timeoutSeconds is negative.
	ErrInvalidTimeout = errors.New("invalid timeoutSeconds: must be non-negative")

	// ErrInvalidPopularWordCount is returned when popularWordCount is negative.
	ErrInvalidPopularWordCount = errors.New("invalid popularWordCount: must be non-negative")

	// ErrInvalidParallelism is returned when parallelism is below one.
	ErrInvalidParallelism = errors.New("invalid parallelism: must be at least 1")

	// ErrUnknownImplementation is returned for an unrecognised implementationOverride.
	ErrUnknownImplementation = errors.New("unknown implementationOverride")

	// ErrUnknownResultFormat is returned for an unrecognised resultFormat.
	ErrUnknownResultFormat = errors.New("unknown resultFormat")

	// ErrInvalidPattern is returned when an ignoredUrls or ignoredWords entry
	// is not a valid regular expression.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrInvalidFetchSettings is returned for negative fetch limits.
	ErrInvalidFetchSettings = errors.New("invalid fetch settings: limits must be non-negative")
)
