package cmd

import (
	"context"
	"fmt"

	configtoml "github.com/bnema/vision3d-engine/internal/adapters/config/toml"
	"github.com/bnema/vision3d-engine/internal/adapters/engine"
	"github.com/bnema/vision3d-engine/internal/adapters/loader"
	"github.com/bnema/vision3d-engine/internal/adapters/logging"
	summaryadapter "github.com/bnema/vision3d-engine/internal/adapters/render/summary"
	"github.com/bnema/vision3d-engine/internal/adapters/rigid"
	"github.com/bnema/vision3d-engine/internal/adapters/storage/file"
	"github.com/bnema/vision3d-engine/internal/application"
	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	resultsKey = "results.gob"
	summaryKey = "summary.toml"
)

type testOptions struct {
	configPath  string
	logStride   int
	exportCorr  bool
	dumpResults bool
	progress    bool
	tester      application.TesterOptions
	loader      loader.Options
}

type summaryFile struct {
	Checkpoint string             `toml:"checkpoint"`
	Items      int                `toml:"items"`
	Metrics    map[string]float64 `toml:"metrics"`
}

func newTestCmd(app *app) *cobra.Command {
	opts := testOptions{loader: loader.DefaultOptions()}
	var testerOptions func() application.TesterOptions

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run one test epoch against a checkpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.tester = testerOptions()
			return runTest(cmd, app, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Experiment TOML file")
	flags.IntVar(&opts.logStride, "log_stride", 0, "Log every N iterations (overrides test.log_stride)")
	flags.BoolVar(&opts.exportCorr, "export_corr", false, "Export correspondence meshes (.obj) per item")
	flags.BoolVar(&opts.dumpResults, "dump_results", false, "Write per-item results and summary.toml to the output directory")
	flags.BoolVar(&opts.progress, "progress", false, "Show a progress spinner while testing")
	testerOptions = opts.tester.BindFlags(flags)
	opts.loader.BindFlags(flags)

	return cmd
}

func runTest(cmd *cobra.Command, app *app, opts testOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	run, err := configtoml.Load(viper.New(), opts.configPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, &run, &opts)

	// Resolve before any log file or output directory is created.
	checkpoint, err := application.ResolveCheckpoint(opts.tester, run.Exp.CheckpointDir, run.Tester.CheckpointExt)
	if err != nil {
		return err
	}

	topology, err := app.detectTopology()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		LogDir:  run.Exp.LogDir,
		Main:    topology.IsMain(),
		Console: cmd.ErrOrStderr(),
		Now:     app.clock.Now(),
	})
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Close()
	}()

	if dumped, err := configtoml.Dump(run); err == nil {
		logger.Info("Configuration:\n" + dumped)
	}
	if topology.IsDistributed() {
		logger.Info("Distributed run.", "rank", topology.Rank, "local_rank", topology.LocalRank, "world_size", topology.WorldSize)
	}

	runtime := engine.NewRuntime()
	if err := runtime.Setup(run.Exp.Seed, opts.tester.CudnnDeterministic); err != nil {
		return err
	}

	dataset, err := rigid.NewDataset(run.Test.DatasetDir)
	if err != nil {
		return err
	}
	source, err := loader.New(dataset, loader.Stack[rigid.Sample], opts.loader, loader.Settings{
		Topology: topology,
		Seed:     run.Exp.Seed,
		Logger:   logger.Logger,
	})
	if err != nil {
		return err
	}
	items := source.Len()

	outputs := file.NewStore(run.Exp.OutputDir, file.WithMainProcess(topology.IsMain()))
	testerOpts := rigid.TesterOptions{InlierThreshold: run.Test.InlierThreshold}
	if opts.exportCorr && topology.IsMain() {
		testerOpts.Exports = outputs
	}

	model := rigid.NewModel()
	tester, err := rigid.NewTester(model, testerOpts)
	if err != nil {
		return err
	}

	driverOpts := application.DriverOptions{Checkpoint: checkpoint, LogStride: run.Test.LogStride}
	execute := func(ctx context.Context, progress func(done, total int)) (domain.Summary, error) {
		driverOpts.Progress = progress
		driver := application.NewTestDriver[rigid.Batch, rigid.Prediction](
			tester,
			application.NewStateLoader(app.checkpoints, logger.Logger),
			runtime,
			logger.Logger,
			driverOpts,
		)
		if err := driver.RegisterModel(model); err != nil {
			return nil, err
		}
		if err := driver.RegisterLoader(source); err != nil {
			return nil, err
		}
		return driver.Run(ctx)
	}

	var summary domain.Summary
	if opts.progress {
		err = runTestProgress(ctx, cmd.ErrOrStderr(), func(ctx context.Context, progress func(done, total int)) error {
			var runErr error
			summary, runErr = execute(ctx, progress)
			return runErr
		})
	} else {
		summary, err = execute(ctx, nil)
	}

	header := summaryadapter.RenderOptions{
		Title:      run.Exp.Name,
		Checkpoint: checkpoint,
		Items:      items,
	}
	if err != nil {
		header.Failed = err
		if rendered, renderErr := app.summaryRenderer(nil, header); renderErr == nil {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), rendered)
		}
		return err
	}

	if opts.dumpResults && topology.IsMain() {
		if err := outputs.DumpGob(ctx, resultsKey, tester.Records()); err != nil {
			return err
		}
		if err := outputs.DumpTOML(ctx, summaryKey, summaryFile{
			Checkpoint: checkpoint,
			Items:      items,
			Metrics:    summary,
		}); err != nil {
			return err
		}
		logger.Info(fmt.Sprintf("Results written to %q.", outputs.Root()))
	}

	rendered, err := app.summaryRenderer(summary, header)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

// applyFlagOverrides lets explicitly passed flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command, run *domain.RunConfig, opts *testOptions) {
	flags := cmd.Flags()

	if flags.Changed("log_stride") {
		run.Test.LogStride = opts.logStride
	}
	if flags.Changed("batch_size") {
		run.Test.BatchSize = opts.loader.BatchSize
	}
	if flags.Changed("num_workers") {
		run.Test.NumWorkers = opts.loader.NumWorkers
	}
	if flags.Changed("shuffle") {
		run.Test.Shuffle = opts.loader.Shuffle
	}

	opts.loader.BatchSize = run.Test.BatchSize
	opts.loader.NumWorkers = run.Test.NumWorkers
	opts.loader.Shuffle = run.Test.Shuffle
}
