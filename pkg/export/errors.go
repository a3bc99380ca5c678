package export

import "errors"

var (
	// ErrEmptyDocument is returned when there is no rendered markup to export.
	ErrEmptyDocument = errors.New("export: document markup is empty")
	// ErrPrintUnavailable reports that no printing facility is configured or
	// the configured command cannot be found.
	ErrPrintUnavailable = errors.New("export: printing is unavailable")
	// ErrPrintFallback reports that printing failed and the standalone file
	// was written to disk instead. The wrapping error names the path.
	ErrPrintFallback = errors.New("export: printed to file instead")
	// ErrInvalidFileName is returned by Save when a name cannot be stored
	// as a single file inside the target directory.
	ErrInvalidFileName = errors.New("export: invalid file name")
)
