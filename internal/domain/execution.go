package domain

import "context"

// ExecutionMode is the engine configuration a run executes under.
type ExecutionMode struct {
	GradEnabled   bool
	Deterministic bool
	Seed          int64
}

type executionModeKey struct{}

func WithExecutionMode(ctx context.Context, mode ExecutionMode) context.Context {
	return context.WithValue(ctx, executionModeKey{}, mode)
}

// ExecutionModeFrom reports the mode attached to ctx. Without one, gradients
// are considered enabled.
func ExecutionModeFrom(ctx context.Context) (ExecutionMode, bool) {
	mode, ok := ctx.Value(executionModeKey{}).(ExecutionMode)
	if !ok {
		return ExecutionMode{GradEnabled: true}, false
	}

	return mode, true
}
