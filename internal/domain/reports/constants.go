package reports

import "time"

const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"

	DefaultFilename    = "kpi-report.pdf"
	DefaultContentType = "application/pdf"

	runLogTimeout = 5 * time.Second
)
