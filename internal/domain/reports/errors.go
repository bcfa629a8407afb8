package reports

import "errors"

var (
	ErrExportFailed         = errors.New("report export failed")
	ErrGeneratorUnavailable = errors.New("report generator is not configured")
	ErrRunNotFound          = errors.New("report run not found")
)
