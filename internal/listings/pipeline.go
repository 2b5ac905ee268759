package listings

import (
	"context"
	"fmt"

	"wedmarket/pkg/logger"
)

// Step is one named stage of a listing flow operating on the flow's state.
type Step[S any] struct {
	Name    string
	Execute func(ctx context.Context, state *S) error
}

func NewStep[S any](name string, execute func(ctx context.Context, state *S) error) Step[S] {
	return Step[S]{Name: name, Execute: execute}
}

// Flow runs its steps in order and stops at the first failure. The returned error wraps
// the step's error, so an *errors.AppError stays reachable through errors.As.
type Flow[S any] struct {
	Name  string
	Steps []Step[S]
}

func (f Flow[S]) Run(ctx context.Context, log *logger.Logger, state *S) error {
	if log == nil {
		log = logger.Discard()
	}
	for _, step := range f.Steps {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s step failed, pipeline errored: %w", step.Name, err)
		}
		if err := step.Execute(ctx, state); err != nil {
			log.Debug("Listing flow step failed",
				"flow", f.Name,
				"step", step.Name,
				"error", err,
			)
			return fmt.Errorf("%s step failed, pipeline errored: %w", step.Name, err)
		}
	}
	return nil
}
