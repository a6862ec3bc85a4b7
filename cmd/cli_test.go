package cmd

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	binarycodec "github.com/bnema/vision3d-engine/internal/adapters/checkpoint/binary"
	"github.com/bnema/vision3d-engine/internal/adapters/rigid"
	"github.com/bnema/vision3d-engine/internal/adapters/storage/file"
	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/bnema/vision3d-engine/internal/version"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCommand(t *testing.T) {
	stdout, _, err := executeCLI(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Version+"\n", stdout)
}

func TestCheckpointIdentityThenInspect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epoch-3.pth")

	stdout, _, err := executeCLI(t, "checkpoint", "identity", path, "--epoch", "3", "--total_steps", "300")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+path)

	stdout, _, err = executeCLI(t, "checkpoint", "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "format: binary")
	assert.Contains(t, stdout, "model: 2 tensors")
	assert.Contains(t, stdout, "transform.rotation [3 3] (9 values)")
	assert.Contains(t, stdout, "transform.translation [3] (3 values)")
	assert.Contains(t, stdout, "metadata: epoch 3, total_steps 300")
}

func TestCheckpointConvertToJSON(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "epoch-1.pth")
	dst := filepath.Join(dir, "epoch-1.json")

	_, _, err := executeCLI(t, "checkpoint", "identity", src)
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, "checkpoint", "convert", src, dst)
	require.NoError(t, err)
	assert.Contains(t, stdout, "(json)")

	stdout, _, err = executeCLI(t, "checkpoint", "inspect", dst)
	require.NoError(t, err)
	assert.Contains(t, stdout, "format: json")
	assert.Contains(t, stdout, "model: 2 tensors")
}

func TestCheckpointInspectMissingFile(t *testing.T) {
	_, _, err := executeCLI(t, "checkpoint", "inspect", filepath.Join(t.TempDir(), "absent.pth"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
}

func TestTestCommandRunsEpoch(t *testing.T) {
	root := writeExperiment(t, 3)
	writeCheckpoint(t, filepath.Join(root, "checkpoints", "epoch-2.pth"), rigid.IdentityCheckpoint())

	stdout, stderr, err := executeCLI(t,
		"test",
		"--config", filepath.Join(root, "experiment.toml"),
		"--test_epoch", "2",
		"--batch_size", "2",
		"--num_workers", "2",
		"--dump_results",
		"--export_corr",
	)
	require.NoError(t, err, "stderr: %s", stderr)

	assert.Contains(t, stdout, "rigid-fixture")
	assert.Contains(t, stdout, "items: 2")
	assert.Contains(t, stdout, "inlier_ratio")
	assert.Contains(t, stdout, "rmse")

	assert.Contains(t, stderr, `Loading from "`+filepath.Join(root, "checkpoints", "epoch-2.pth")+`".`)
	assert.Contains(t, stderr, "Model has been loaded.")
	assert.Contains(t, stderr, "iter[2/2]")
	assert.Contains(t, stderr, "summary inlier_ratio: 0.500, rmse: 0.707")

	outputs := filepath.Join(root, "outputs")
	var summary summaryFile
	data, err := os.ReadFile(filepath.Join(outputs, summaryKey))
	require.NoError(t, err)
	require.NoError(t, toml.Unmarshal(data, &summary))
	assert.Equal(t, 2, summary.Items)
	assert.InDelta(t, 0.5, summary.Metrics["inlier_ratio"], 1e-9)

	var records []rigid.ItemResult
	data, err = os.ReadFile(filepath.Join(outputs, resultsKey))
	require.NoError(t, err)
	require.NoError(t, gob.NewDecoder(bytes.NewReader(data)).Decode(&records))
	require.Len(t, records, 2)
	assert.Equal(t, []string{"scene-0", "scene-1"}, records[0].Names)
	assert.Equal(t, []string{"scene-2"}, records[1].Names)

	lines, err := file.ReadLines(filepath.Join(outputs, "correspondences", "scene-0.obj"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"v 0.000000 0.000000 0.000000",
		"v 0.000000 0.000000 0.000000",
		"v 1.000000 0.000000 0.000000",
		"v 1.000000 1.000000 0.000000",
		"l 1 2",
		"l 3 4",
	}, lines)

	logs, err := filepath.Glob(filepath.Join(root, "logs", "test-*.log"))
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestTestCommandRequiresCheckpoint(t *testing.T) {
	root := writeExperiment(t, 1)

	_, _, err := executeCLI(t, "test", "--config", filepath.Join(root, "experiment.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
	assert.Contains(t, err.Error(), "no checkpoint specified")

	logs, globErr := filepath.Glob(filepath.Join(root, "logs", "test-*.log"))
	require.NoError(t, globErr)
	assert.Empty(t, logs)
	assert.NoDirExists(t, filepath.Join(root, "logs"))
}

func TestTestCommandRejectsMismatchedCheckpoint(t *testing.T) {
	root := writeExperiment(t, 1)
	checkpoint := rigid.IdentityCheckpoint()
	checkpoint.Model["head.weight"] = domain.Tensor{Shape: []int{1}, Data: []float32{1}}
	path := filepath.Join(root, "custom.pth")
	writeCheckpoint(t, path, checkpoint)

	stdout, stderr, err := executeCLI(t, "test", "--config", filepath.Join(root, "experiment.toml"), "--checkpoint", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchema)
	assert.Contains(t, err.Error(), "head.weight")
	assert.Contains(t, stderr, "test run failed")
	assert.Contains(t, stdout, "rigid-fixture")
	assert.Contains(t, stdout, "checkpoint: "+path)
	assert.Contains(t, stdout, "failed: ")
	assert.Contains(t, stdout, "head.weight")
	assert.NotContains(t, stdout, "No metrics reported.")
}

func TestTestCommandWithProgress(t *testing.T) {
	root := writeExperiment(t, 2)
	writeCheckpoint(t, filepath.Join(root, "checkpoints", "epoch-1.pth"), rigid.IdentityCheckpoint())

	stdout, stderr, err := executeCLI(t, "test", "--config", filepath.Join(root, "experiment.toml"), "--test_epoch", "1", "--progress")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "items: 2")
	assert.Contains(t, stdout, "rmse")
}

func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	for _, key := range []string{"RANK", "WORLD_SIZE", "LOCAL_RANK"} {
		t.Setenv(key, "")
	}

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

// writeExperiment lays out a run root holding n correspondence files. Each
// file has one exact pair and one pair off by a unit along y.
func writeExperiment(t *testing.T, n int) string {
	t.Helper()

	root := t.TempDir()
	dataset := filepath.Join(root, "dataset")
	require.NoError(t, os.MkdirAll(dataset, 0o755))
	for i := range n {
		body := "0 0 0 0 0 0\n1 0 0 1 1 0\n"
		require.NoError(t, os.WriteFile(filepath.Join(dataset, fmt.Sprintf("scene-%d.txt", i)), []byte(body), 0o644))
	}

	config := fmt.Sprintf(`[exp]
name = "rigid-fixture"
root_dir = %q

[test]
dataset_dir = %q
log_stride = 1
inlier_threshold = 0.5
`, root, dataset)
	require.NoError(t, os.WriteFile(filepath.Join(root, "experiment.toml"), []byte(config), 0o644))

	return root
}

func writeCheckpoint(t *testing.T, path string, checkpoint domain.Checkpoint) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, binarycodec.NewCodec().Write(context.Background(), path, checkpoint))
}
