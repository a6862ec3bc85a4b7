// Package toml loads the run configuration from a TOML experiment file,
// V3D_* environment overrides and built-in defaults.
package toml

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/bnema/vision3d-engine/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	configType = "toml"
	envPrefix  = "V3D"
)

// Load resolves the run configuration. An empty path uses defaults and the
// environment only; a named file must exist.
func Load(cfg *viper.Viper, path string) (domain.RunConfig, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	cfg.SetConfigType(configType)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	for key, value := range defaults {
		cfg.SetDefault(key, value)
	}

	if path != "" {
		cfg.SetConfigFile(path)
		if err := cfg.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
				return domain.RunConfig{}, domain.ConfigurationError("config file %q not found", path)
			}
			return domain.RunConfig{}, &domain.Error{Kind: domain.ErrConfiguration, Msg: fmt.Sprintf("read config file %q", path), Err: err}
		}
	}

	if err := validateVersion(cfg.GetInt(keyVersion)); err != nil {
		return domain.RunConfig{}, &domain.Error{Kind: domain.ErrConfiguration, Msg: "check config version", Err: err}
	}

	rootDir := cfg.GetString(keyExpRootDir)
	run := domain.RunConfig{
		Exp: domain.ExperimentConfig{
			Name:          cfg.GetString(keyExpName),
			RootDir:       rootDir,
			LogDir:        dirOrDefault(cfg.GetString(keyExpLogDir), rootDir, "logs"),
			CheckpointDir: dirOrDefault(cfg.GetString(keyExpCheckpoint), rootDir, "checkpoints"),
			OutputDir:     dirOrDefault(cfg.GetString(keyExpOutputDir), rootDir, "outputs"),
			Seed:          cfg.GetInt64(keyExpSeed),
		},
		Test: domain.TestConfig{
			DatasetDir:      cfg.GetString(keyTestDatasetDir),
			BatchSize:       cfg.GetInt(keyTestBatchSize),
			NumWorkers:      cfg.GetInt(keyTestNumWorkers),
			Shuffle:         cfg.GetBool(keyTestShuffle),
			LogStride:       cfg.GetInt(keyTestLogStride),
			InlierThreshold: cfg.GetFloat64(keyTestInlierThres),
		},
		Tester: domain.TesterConfig{
			CheckpointExt: strings.TrimPrefix(cfg.GetString(keyTesterCkptExt), "."),
		},
	}

	if err := validate(run); err != nil {
		return domain.RunConfig{}, err
	}

	return run, nil
}

func dirOrDefault(value, rootDir, name string) string {
	if value != "" {
		return value
	}

	return filepath.Join(rootDir, name)
}

func validate(run domain.RunConfig) error {
	switch {
	case run.Exp.Name == "":
		return domain.ConfigurationError("exp.name is empty")
	case run.Test.BatchSize < 1:
		return domain.ConfigurationError("test.batch_size must be positive, got %d", run.Test.BatchSize)
	case run.Test.NumWorkers < 0:
		return domain.ConfigurationError("test.num_workers must not be negative, got %d", run.Test.NumWorkers)
	case run.Test.InlierThreshold <= 0:
		return domain.ConfigurationError("test.inlier_threshold must be positive, got %g", run.Test.InlierThreshold)
	case run.Exp.Seed < 0:
		return domain.ConfigurationError("exp.seed must not be negative, got %d", run.Exp.Seed)
	}

	return nil
}

// Dump renders the resolved configuration as TOML.
func Dump(run domain.RunConfig) (string, error) {
	data, err := toml.Marshal(toSchema(run))
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}

	return string(data), nil
}

// Decode parses a document produced by Dump.
func Decode(data []byte) (domain.RunConfig, error) {
	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return domain.RunConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if err := validateVersion(file.Version); err != nil {
		return domain.RunConfig{}, err
	}

	return fromSchema(file), nil
}

func toSchema(run domain.RunConfig) fileSchema {
	return fileSchema{
		Version: currentSchemaVersion,
		Exp: expSchema{
			Name:          run.Exp.Name,
			RootDir:       run.Exp.RootDir,
			LogDir:        run.Exp.LogDir,
			CheckpointDir: run.Exp.CheckpointDir,
			OutputDir:     run.Exp.OutputDir,
			Seed:          run.Exp.Seed,
		},
		Test: testSchema{
			DatasetDir:      run.Test.DatasetDir,
			BatchSize:       run.Test.BatchSize,
			NumWorkers:      run.Test.NumWorkers,
			Shuffle:         run.Test.Shuffle,
			LogStride:       run.Test.LogStride,
			InlierThreshold: run.Test.InlierThreshold,
		},
		Tester: testerSchema{CheckpointExt: run.Tester.CheckpointExt},
	}
}

func fromSchema(file fileSchema) domain.RunConfig {
	return domain.RunConfig{
		Exp: domain.ExperimentConfig{
			Name:          file.Exp.Name,
			RootDir:       file.Exp.RootDir,
			LogDir:        file.Exp.LogDir,
			CheckpointDir: file.Exp.CheckpointDir,
			OutputDir:     file.Exp.OutputDir,
			Seed:          file.Exp.Seed,
		},
		Test: domain.TestConfig{
			DatasetDir:      file.Test.DatasetDir,
			BatchSize:       file.Test.BatchSize,
			NumWorkers:      file.Test.NumWorkers,
			Shuffle:         file.Test.Shuffle,
			LogStride:       file.Test.LogStride,
			InlierThreshold: file.Test.InlierThreshold,
		},
		Tester: domain.TesterConfig{CheckpointExt: file.Tester.CheckpointExt},
	}
}
