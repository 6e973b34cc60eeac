package core

import "errors"

// Error taxonomy for the pipeline. Callers match with errors.Is.
var (
	// ErrRegionNotFound means the locator could not confidently isolate a
	// product's content region. Non-fatal: the caller falls back to a
	// whole-page extraction.
	ErrRegionNotFound = errors.New("product content region not found")

	// ErrFetchFailed is a network or timeout failure. Fatal for the page,
	// skip-only for a single image.
	ErrFetchFailed = errors.New("fetch failed")

	// ErrDecodeFailed means an image payload was not a supported image.
	ErrDecodeFailed = errors.New("image decode failed")

	// ErrOversizedAsset means a declared content length exceeded the limit.
	ErrOversizedAsset = errors.New("asset exceeds size limit")

	// ErrCompleterUnavailable means the text completion service is absent
	// or misconfigured. Never fatal: summarization falls back to
	// deterministic truncation.
	ErrCompleterUnavailable = errors.New("text completion service unavailable")

	// ErrAssemblyFailed means deck construction failed. Fatal for the
	// whole presentation build; no partial file is produced.
	ErrAssemblyFailed = errors.New("deck assembly failed")
)
