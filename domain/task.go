package domain

import "context"

// ExecutableTask is one unit of work the ParallelExecutor can run
// concurrently -- one project's scan, in the scan-all batch runner.
type ExecutableTask interface {
	// Name identifies the task for error reporting and progress descriptions.
	Name() string

	// Execute runs the task, returning its result and any error.
	Execute(ctx context.Context) (interface{}, error)

	// IsEnabled reports whether this task should run at all.
	IsEnabled() bool
}
