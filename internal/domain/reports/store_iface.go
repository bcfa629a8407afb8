package reports

import "context"

type StoreAPI interface {
	CreateRun(ctx context.Context, employees, metrics int) (string, error)
	CompleteRun(ctx context.Context, runID, status, filename, errMsg string) error
	ListRuns(ctx context.Context, limit, offset int) ([]Run, error)
}
