package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/bnema/vision3d-engine/internal/ports"
)

type DriverOptions struct {
	// Checkpoint is the resolved checkpoint path loaded when the run starts.
	Checkpoint string
	// LogStride emits an iteration line every LogStride items. Values below 1
	// log every item. The last item is always logged.
	LogStride int
	// Progress, when set, is called after every completed item.
	Progress func(done, total int)
}

// TestDriver runs one evaluation epoch:
// UNINITIALIZED -> READY -> RUNNING -> DONE, or FAILED from any non-terminal state.
//
// Starting a run switches the engine's gradient bookkeeping off for the whole
// process. The switch is not restored afterwards, whether the run succeeds or
// fails; callers that need gradients again must re-enable them.
type TestDriver[D, O any] struct {
	tester Tester[D, O]
	loader *StateLoader
	engine ports.Engine
	logger *slog.Logger
	opts   DriverOptions

	state     domain.DriverState
	model     ports.Model
	source    ports.DataSource[D]
	iteration int
}

func NewTestDriver[D, O any](tester Tester[D, O], loader *StateLoader, engine ports.Engine, logger *slog.Logger, opts DriverOptions) *TestDriver[D, O] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &TestDriver[D, O]{
		tester:    tester,
		loader:    loader,
		engine:    engine,
		logger:    logger,
		opts:      opts,
		state:     domain.DriverUninitialized,
		iteration: -1,
	}
}

func (d *TestDriver[D, O]) State() domain.DriverState {
	return d.state
}

// Iteration is the index of the item currently (or last) processed, -1 before the first.
func (d *TestDriver[D, O]) Iteration() int {
	return d.iteration
}

func (d *TestDriver[D, O]) RegisterModel(model ports.Model) error {
	if err := d.checkRegistration("model", model == nil); err != nil {
		return err
	}

	d.model = model
	if stringer, ok := model.(fmt.Stringer); ok {
		d.logger.Info("Model description:\n" + stringer.String())
	}
	d.advanceWhenReady()

	return nil
}

func (d *TestDriver[D, O]) RegisterLoader(source ports.DataSource[D]) error {
	if err := d.checkRegistration("data source", source == nil); err != nil {
		return err
	}

	d.source = source
	d.advanceWhenReady()

	return nil
}

func (d *TestDriver[D, O]) checkRegistration(what string, isNil bool) error {
	if d.state != domain.DriverUninitialized && d.state != domain.DriverReady {
		return domain.PreconditionError("cannot register %s in state %s", what, d.state)
	}
	if isNil {
		return domain.PreconditionError("%s is nil", what)
	}

	return nil
}

func (d *TestDriver[D, O]) advanceWhenReady() {
	if d.state == domain.DriverUninitialized && d.model != nil && d.source != nil {
		d.state, _ = d.state.Transition(domain.DriverReady)
	}
}

// Run executes the epoch and returns the aggregated summary. Every error is
// fatal: the driver ends in FAILED and no further items are consumed.
func (d *TestDriver[D, O]) Run(ctx context.Context) (domain.Summary, error) {
	if d.state != domain.DriverReady {
		var err error
		switch {
		case d.model == nil:
			err = domain.PreconditionError("no model registered")
		case d.source == nil:
			err = domain.PreconditionError("no data source registered")
		default:
			err = domain.PreconditionError("driver is %s, want %s", d.state, domain.DriverReady)
		}
		return nil, d.fail(ctx, err)
	}

	if err := d.transition(domain.DriverRunning); err != nil {
		return nil, d.fail(ctx, err)
	}

	if _, err := d.loader.Load(ctx, d.opts.Checkpoint, d.model); err != nil {
		return nil, d.fail(ctx, err)
	}
	d.model.SetTraining(false)
	d.engine.SetGradEnabled(false)
	ctx = domain.WithExecutionMode(ctx, d.engine.Mode())

	summary, err := d.testEpoch(ctx)
	if err != nil {
		return nil, d.fail(ctx, err)
	}

	if err := d.transition(domain.DriverDone); err != nil {
		return nil, d.fail(ctx, err)
	}

	return summary, nil
}

func (d *TestDriver[D, O]) testEpoch(ctx context.Context) (domain.Summary, error) {
	var aggregator Aggregator = NewMeanAggregator()
	if provider, ok := any(d.tester).(AggregatorProvider); ok {
		aggregator = provider.NewAggregator()
	}

	if hook, ok := any(d.tester).(BeforeTestEpochHook); ok {
		hook.BeforeTestEpoch(ctx)
	}

	// Len may be costly for lazy sources; read it once per epoch.
	total := d.source.Len()
	iteration := 0
	for data, err := range d.source.All(ctx) {
		d.iteration = iteration
		if err != nil {
			return nil, domain.IOError(err, "read test item at iteration %d", iteration)
		}

		result, err := d.step(ctx, iteration, total, data)
		if err != nil {
			return nil, err
		}
		aggregator.Add(result)

		if d.opts.Progress != nil {
			d.opts.Progress(iteration+1, total)
		}
		iteration++
	}

	summary := aggregator.Summary()
	if hook, ok := any(d.tester).(AfterTestEpochHook); ok {
		hook.AfterTestEpoch(ctx, summary)
	}
	d.logger.InfoContext(ctx, "summary "+summary.String(), "iterations", iteration)

	return summary, nil
}

func (d *TestDriver[D, O]) step(ctx context.Context, iteration, total int, data D) (domain.Result, error) {
	if hook, ok := any(d.tester).(BeforeTestStepHook[D]); ok {
		hook.BeforeTestStep(ctx, iteration, data)
	}

	output, err := d.tester.TestStep(ctx, iteration, data)
	if err != nil {
		return nil, domain.RuntimeError(err, "test step at iteration %d", iteration)
	}

	result, err := d.tester.EvalStep(ctx, iteration, data, output)
	if err != nil {
		return nil, domain.RuntimeError(err, "eval step at iteration %d", iteration)
	}

	if hook, ok := any(d.tester).(AfterTestStepHook[D, O]); ok {
		hook.AfterTestStep(ctx, iteration, data, output, result)
	}

	if d.shouldLog(iteration, total) {
		message := result.String()
		if stringer, ok := any(d.tester).(LogStringer[D, O]); ok {
			message = stringer.LogString(iteration, data, output, result)
		}
		d.logger.InfoContext(ctx, fmt.Sprintf("iter[%d/%d] %s", iteration+1, total, message), "iteration", iteration)
	}

	return result, nil
}

func (d *TestDriver[D, O]) shouldLog(iteration, total int) bool {
	stride := d.opts.LogStride
	if stride < 1 {
		return true
	}

	return (iteration+1)%stride == 0 || iteration+1 == total
}

func (d *TestDriver[D, O]) transition(to domain.DriverState) error {
	next, err := d.state.Transition(to)
	if err != nil {
		return err
	}

	d.state = next
	return nil
}

func (d *TestDriver[D, O]) fail(ctx context.Context, err error) error {
	if !d.state.IsTerminal() {
		d.state = domain.DriverFailed
	}

	attrs := []any{"error", err}
	if d.iteration >= 0 {
		attrs = append(attrs, "iteration", d.iteration)
	}
	d.logger.ErrorContext(ctx, "test run failed", attrs...)

	return err
}
