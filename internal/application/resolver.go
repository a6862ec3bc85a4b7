package application

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bnema/vision3d-engine/internal/domain"
)

// ResolveCheckpoint picks the checkpoint file a test run loads. An explicit
// path wins over an epoch number. The file is not required to exist.
func ResolveCheckpoint(opts TesterOptions, checkpointDir, ext string) (string, error) {
	var name string
	switch {
	case strings.TrimSpace(opts.Checkpoint) != "":
		name = opts.Checkpoint
	case opts.TestEpoch != nil:
		name = EpochCheckpointName(*opts.TestEpoch, ext)
	default:
		return "", domain.ConfigurationError("no checkpoint specified (use --checkpoint or --test_epoch)")
	}

	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}

	return filepath.Join(checkpointDir, name), nil
}

func EpochCheckpointName(epoch int, ext string) string {
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = DefaultCheckpointExt
	}

	return fmt.Sprintf("epoch-%d.%s", epoch, ext)
}
