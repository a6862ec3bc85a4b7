package toml

import "fmt"

const currentSchemaVersion = 1

const (
	keyVersion         = "version"
	keyExpName         = "exp.name"
	keyExpRootDir      = "exp.root_dir"
	keyExpLogDir       = "exp.log_dir"
	keyExpCheckpoint   = "exp.checkpoint_dir"
	keyExpOutputDir    = "exp.output_dir"
	keyExpSeed         = "exp.seed"
	keyTestDatasetDir  = "test.dataset_dir"
	keyTestBatchSize   = "test.batch_size"
	keyTestNumWorkers  = "test.num_workers"
	keyTestShuffle     = "test.shuffle"
	keyTestLogStride   = "test.log_stride"
	keyTestInlierThres = "test.inlier_threshold"
	keyTesterCkptExt   = "tester.checkpoint_ext"
)

// defaults lists every key the run configuration understands.
var defaults = map[string]any{
	keyVersion:         currentSchemaVersion,
	keyExpName:         "vision3d",
	keyExpRootDir:      ".",
	keyExpLogDir:       "",
	keyExpCheckpoint:   "",
	keyExpOutputDir:    "",
	keyExpSeed:         7351,
	keyTestDatasetDir:  "data/test",
	keyTestBatchSize:   1,
	keyTestNumWorkers:  1,
	keyTestShuffle:     false,
	keyTestLogStride:   1,
	keyTestInlierThres: 0.1,
	keyTesterCkptExt:   "pth",
}

// fileSchema is the on-disk layout written by Dump.
type fileSchema struct {
	Version int          `toml:"version"`
	Exp     expSchema    `toml:"exp"`
	Test    testSchema   `toml:"test"`
	Tester  testerSchema `toml:"tester"`
}

type expSchema struct {
	Name          string `toml:"name"`
	RootDir       string `toml:"root_dir"`
	LogDir        string `toml:"log_dir"`
	CheckpointDir string `toml:"checkpoint_dir"`
	OutputDir     string `toml:"output_dir"`
	Seed          int64  `toml:"seed"`
}

type testSchema struct {
	DatasetDir      string  `toml:"dataset_dir"`
	BatchSize       int     `toml:"batch_size"`
	NumWorkers      int     `toml:"num_workers"`
	Shuffle         bool    `toml:"shuffle"`
	LogStride       int     `toml:"log_stride"`
	InlierThreshold float64 `toml:"inlier_threshold"`
}

type testerSchema struct {
	CheckpointExt string `toml:"checkpoint_ext"`
}

func validateVersion(version int) error {
	if version > currentSchemaVersion {
		return fmt.Errorf("unsupported config schema version %d (current %d)", version, currentSchemaVersion)
	}

	return nil
}
