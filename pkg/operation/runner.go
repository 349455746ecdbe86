package operation

import (
	"context"

	"github.com/rs/zerolog"
)

// 🏃 Runner executes operations sequentially
type Runner struct {
	logger *zerolog.Logger
}

// 🏗️ NewRunner creates a new runner
func NewRunner(logger *zerolog.Logger) *Runner {
	return &Runner{logger: logger}
}

// 🏃 Run executes an operation to completion. Operations run
// synchronously; the walk holds at most one source and one
// destination descriptor at a time.
func (r *Runner) Run(ctx context.Context, op Operation) error {
	r.logger.Debug().Str("operation", op.Name()).Msg("running operation")
	return op.Execute(ctx)
}
