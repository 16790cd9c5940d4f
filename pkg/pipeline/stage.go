// Package pipeline provides the stage abstraction and the shared types for timelapse.
package pipeline

import (
	"context"
	"time"
)

// Stage represents a processing stage in the pipeline.
// Each stage takes an input and produces an output.
type Stage[In, Out any] interface {
	// Execute runs the stage with the given input and returns the output.
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc is a function adapter for Stage interface.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute implements Stage interface.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}

// ExecuteTimed runs the stage and reports its wall time alongside the result.
func ExecuteTimed[In, Out any](ctx context.Context, stage Stage[In, Out], input In) (Out, time.Duration, error) {
	start := time.Now()
	out, err := stage.Execute(ctx, input)
	return out, time.Since(start), err
}
