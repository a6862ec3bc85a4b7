package json

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bnema/vision3d-engine/internal/adapters/storage/file"
	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/bnema/vision3d-engine/internal/ports"
)

const fileMode = 0o644

// checkpointSchema mirrors the binary container in a human-readable form.
type checkpointSchema struct {
	Model    map[string]tensorSchema `json:"model,omitempty"`
	Metadata *metadataSchema         `json:"metadata,omitempty"`
}

type tensorSchema struct {
	Shape []int     `json:"shape"`
	Data  []float32 `json:"data"`
}

type metadataSchema struct {
	Epoch      int64 `json:"epoch"`
	TotalSteps int64 `json:"total_steps"`
}

type Codec struct{}

var (
	_ ports.CheckpointReader = Codec{}
	_ ports.CheckpointWriter = Codec{}
)

func NewCodec() Codec {
	return Codec{}
}

func (c Codec) Read(ctx context.Context, path string) (domain.Checkpoint, error) {
	if err := ctx.Err(); err != nil {
		return domain.Checkpoint{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Checkpoint{}, domain.IOError(err, "read checkpoint %q", path)
	}

	checkpoint, err := Decode(data)
	if err != nil {
		return domain.Checkpoint{}, domain.IOError(err, "decode checkpoint %q", path)
	}

	return checkpoint, nil
}

func (c Codec) Write(ctx context.Context, path string, checkpoint domain.Checkpoint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := Encode(checkpoint)
	if err != nil {
		return fmt.Errorf("encode checkpoint: %w", err)
	}

	if err := file.WriteAtomic(path, data, fileMode); err != nil {
		return domain.IOError(err, "write checkpoint %q", path)
	}

	return nil
}

// Sniff reports whether data looks like a JSON object.
func Sniff(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func Encode(checkpoint domain.Checkpoint) ([]byte, error) {
	var schema checkpointSchema
	if checkpoint.Model != nil {
		schema.Model = make(map[string]tensorSchema, len(checkpoint.Model))
		for name, tensor := range checkpoint.Model {
			if err := tensor.Validate(); err != nil {
				return nil, fmt.Errorf("tensor %q: %w", name, err)
			}
			schema.Model[name] = tensorSchema{Shape: tensor.Shape, Data: tensor.Data}
		}
	}
	if meta := checkpoint.Metadata; meta != nil {
		schema.Metadata = &metadataSchema{Epoch: meta.Epoch, TotalSteps: meta.TotalSteps}
	}

	return json.MarshalIndent(schema, "", "  ")
}

func Decode(data []byte) (domain.Checkpoint, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return domain.Checkpoint{}, err
	}

	var checkpoint domain.Checkpoint
	if modelRaw, ok := section(raw, "model"); ok {
		var model map[string]tensorSchema
		if err := json.Unmarshal(modelRaw, &model); err != nil {
			return domain.Checkpoint{}, fmt.Errorf("decode model section: %w", err)
		}

		checkpoint.Model = make(domain.StateDict, len(model))
		for name, entry := range model {
			tensor := domain.Tensor{Shape: entry.Shape, Data: entry.Data}
			if err := tensor.Validate(); err != nil {
				return domain.Checkpoint{}, fmt.Errorf("tensor %q: %w", name, err)
			}
			checkpoint.Model[name] = tensor
		}
	}

	if metaRaw, ok := section(raw, "metadata"); ok {
		var meta metadataSchema
		if err := json.Unmarshal(metaRaw, &meta); err != nil {
			return domain.Checkpoint{}, fmt.Errorf("decode metadata section: %w", err)
		}
		checkpoint.Metadata = &domain.CheckpointMetadata{Epoch: meta.Epoch, TotalSteps: meta.TotalSteps}
	}

	return checkpoint, nil
}

// section treats a JSON null the same as a missing key.
func section(raw map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	value, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return nil, false
	}
	return value, true
}
