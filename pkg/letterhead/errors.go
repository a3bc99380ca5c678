package letterhead

import "errors"

var (
	// ErrUnsupportedUpload is returned for uploads that are neither images
	// nor PDFs (or, for HTML ingestion, not HTML).
	ErrUnsupportedUpload = errors.New("letterhead: unsupported upload type")
	// ErrUnknownSlot rejects slot names other than header/footer.
	ErrUnknownSlot = errors.New("letterhead: unknown slot")
	// ErrEmptyUpload is returned when an upload carries no bytes.
	ErrEmptyUpload = errors.New("letterhead: empty upload")
)
