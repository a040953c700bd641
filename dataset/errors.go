package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors for package dataset.
var (
	// Catalog errors
	ErrUnknownDataset   = errors.New("unknown dataset")
	ErrDuplicateDataset = errors.New("duplicate dataset name")
	ErrMissingURL       = errors.New("dataset has no url")

	// Archive errors
	ErrUnsupportedArchive = errors.New("unsupported archive format")
	ErrUnsafePath         = errors.New("archive entry escapes destination directory")

	// Download errors
	ErrChecksumMismatch = errors.New("sha256 checksum mismatch")
)

// HTTPError reports a download answered with a non-2xx status.
type HTTPError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}
