package application

import (
	"context"

	"github.com/bnema/vision3d-engine/internal/domain"
)

// Tester is the evaluation logic a TestDriver runs. D is one item produced
// by the data source and O is the model output for it.
type Tester[D, O any] interface {
	TestStep(ctx context.Context, iteration int, data D) (O, error)
	EvalStep(ctx context.Context, iteration int, data D, output O) (domain.Result, error)
}

// Optional hooks. A tester opts in by implementing the method; embedding
// NopHooks satisfies the epoch-level ones.
type (
	BeforeTestEpochHook interface {
		BeforeTestEpoch(ctx context.Context)
	}

	AfterTestEpochHook interface {
		AfterTestEpoch(ctx context.Context, summary domain.Summary)
	}

	BeforeTestStepHook[D any] interface {
		BeforeTestStep(ctx context.Context, iteration int, data D)
	}

	AfterTestStepHook[D, O any] interface {
		AfterTestStep(ctx context.Context, iteration int, data D, output O, result domain.Result)
	}

	LogStringer[D, O any] interface {
		LogString(iteration int, data D, output O, result domain.Result) string
	}

	// AggregatorProvider lets a tester own the summary policy of an epoch.
	AggregatorProvider interface {
		NewAggregator() Aggregator
	}
)

type NopHooks struct{}

func (NopHooks) BeforeTestEpoch(context.Context) {}

func (NopHooks) AfterTestEpoch(context.Context, domain.Summary) {}
