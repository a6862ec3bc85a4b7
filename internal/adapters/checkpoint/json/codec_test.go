package json

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "epoch-2.json")
	want := domain.Checkpoint{
		Model: domain.StateDict{
			"head.weight": {Shape: []int{2, 1}, Data: []float32{0.5, -2}},
			"head.bias":   {Shape: []int{1}, Data: []float32{0.125}},
		},
		Metadata: &domain.CheckpointMetadata{Epoch: 2, TotalSteps: 900},
	}

	codec := NewCodec()
	require.NoError(t, codec.Write(context.Background(), path, want))

	got, err := codec.Read(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestDecodeSections(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name      string
		input     string
		wantModel bool
		wantMeta  bool
		wantErr   string
	}{
		{name: "model only", input: `{"model": {"w": {"shape": [1], "data": [1]}}}`, wantModel: true},
		{name: "empty model", input: `{"model": {}}`, wantModel: true},
		{name: "metadata only", input: `{"metadata": {"epoch": 3, "total_steps": 30}}`, wantMeta: true},
		{name: "null model", input: `{"model": null, "metadata": {"epoch": 3}}`, wantMeta: true},
		{name: "null metadata", input: `{"model": {}, "metadata": null}`, wantModel: true},
		{name: "inconsistent tensor", input: `{"model": {"w": {"shape": [2], "data": [1]}}}`, wantErr: `tensor "w"`},
		{name: "not json", input: `epoch-3`, wantErr: "invalid character"},
		{name: "model is not an object", input: `{"model": [1, 2]}`, wantErr: "decode model section"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode([]byte(tc.input))
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantModel, got.Model != nil)
			assert.Equal(t, tc.wantMeta, got.Metadata != nil)
		})
	}
}

func TestSniff(t *testing.T) {
	t.Parallel()

	assert.True(t, Sniff([]byte("  \n{\"model\": {}}")))
	assert.False(t, Sniff([]byte("V3DCKPT")))
	assert.False(t, Sniff(nil))
}

func TestReadMissingFileIsIOError(t *testing.T) {
	t.Parallel()

	_, err := NewCodec().Read(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
