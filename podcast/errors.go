package podcast

import "errors"

// Failure kinds. Every error returned by the stores, the fetcher, the
// extractors and the executor wraps exactly one of them.
var (
	// ErrFetch means a landing page or media file could not be retrieved.
	ErrFetch = errors.New("fetch failed")

	// ErrParse means a landing page did not contain the expected structured data.
	ErrParse = errors.New("parse failed")

	// ErrConfig means the catalog or the state file is missing or malformed.
	ErrConfig = errors.New("invalid configuration")

	// ErrWrite means a downloaded file could not be written.
	ErrWrite = errors.New("write failed")
)

// Kind returns the sentinel wrapped by err, or nil if none is.
func Kind(err error) error {
	for _, kind := range []error{ErrFetch, ErrParse, ErrConfig, ErrWrite} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
