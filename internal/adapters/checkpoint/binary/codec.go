// Package binary stores checkpoints in a compact protobuf-framed container.
//
// Layout: the 8-byte magic "V3DCKPT\x01" followed by one protobuf message
//
//	message Checkpoint {
//	  StateDict model    = 1;
//	  Metadata  metadata = 2;
//	  uint32    version  = 15;
//	}
//	message StateDict { repeated Tensor tensors = 1; }
//	message Tensor {
//	  string name           = 1;
//	  repeated int64 shape  = 2 [packed = true];
//	  repeated float data   = 3 [packed = true];
//	}
//	message Metadata { sint64 epoch = 1; sint64 total_steps = 2; }
package binary

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"os"

	"github.com/bnema/vision3d-engine/internal/adapters/storage/file"
	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/bnema/vision3d-engine/internal/ports"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	formatVersion = 1
	fileMode      = 0o644
)

var Magic = []byte("V3DCKPT\x01")

const (
	fieldModel    protowire.Number = 1
	fieldMetadata protowire.Number = 2
	fieldVersion  protowire.Number = 15

	fieldTensors protowire.Number = 1

	fieldName  protowire.Number = 1
	fieldShape protowire.Number = 2
	fieldData  protowire.Number = 3

	fieldEpoch      protowire.Number = 1
	fieldTotalSteps protowire.Number = 2
)

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

// Sniff reports whether data starts with the container magic.
func Sniff(data []byte) bool {
	return bytes.HasPrefix(data, Magic)
}

func Encode(checkpoint domain.Checkpoint) ([]byte, error) {
	out := append([]byte(nil), Magic...)
	out = protowire.AppendTag(out, fieldVersion, protowire.VarintType)
	out = protowire.AppendVarint(out, formatVersion)

	if checkpoint.Model != nil {
		model, err := encodeStateDict(checkpoint.Model)
		if err != nil {
			return nil, err
		}
		out = protowire.AppendTag(out, fieldModel, protowire.BytesType)
		out = protowire.AppendBytes(out, model)
	}

	if meta := checkpoint.Metadata; meta != nil {
		var b []byte
		b = protowire.AppendTag(b, fieldEpoch, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(meta.Epoch))
		b = protowire.AppendTag(b, fieldTotalSteps, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(meta.TotalSteps))

		out = protowire.AppendTag(out, fieldMetadata, protowire.BytesType)
		out = protowire.AppendBytes(out, b)
	}

	return out, nil
}

func encodeStateDict(state domain.StateDict) ([]byte, error) {
	var out []byte
	for _, name := range state.Keys() {
		tensor := state[name]
		if err := tensor.Validate(); err != nil {
			return nil, fmt.Errorf("tensor %q: %w", name, err)
		}

		var b []byte
		b = protowire.AppendTag(b, fieldName, protowire.BytesType)
		b = protowire.AppendString(b, name)

		var shape []byte
		for _, dim := range tensor.Shape {
			shape = protowire.AppendVarint(shape, uint64(dim))
		}
		b = protowire.AppendTag(b, fieldShape, protowire.BytesType)
		b = protowire.AppendBytes(b, shape)

		values := make([]byte, 0, 4*len(tensor.Data))
		for _, v := range tensor.Data {
			values = protowire.AppendFixed32(values, math.Float32bits(v))
		}
		b = protowire.AppendTag(b, fieldData, protowire.BytesType)
		b = protowire.AppendBytes(b, values)

		out = protowire.AppendTag(out, fieldTensors, protowire.BytesType)
		out = protowire.AppendBytes(out, b)
	}

	return out, nil
}

func Decode(data []byte) (domain.Checkpoint, error) {
	if !Sniff(data) {
		return domain.Checkpoint{}, fmt.Errorf("missing checkpoint magic")
	}
	b := data[len(Magic):]

	var checkpoint domain.Checkpoint
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return domain.Checkpoint{}, protowire.ParseError(n)
		}
		b = b[n:]

		switch {
		case num == fieldVersion && typ == protowire.VarintType:
			version, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return domain.Checkpoint{}, protowire.ParseError(n)
			}
			if version > formatVersion {
				return domain.Checkpoint{}, fmt.Errorf("unsupported checkpoint version %d (current %d)", version, formatVersion)
			}
			b = b[n:]
		case num == fieldModel && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return domain.Checkpoint{}, protowire.ParseError(n)
			}
			state, err := decodeStateDict(raw)
			if err != nil {
				return domain.Checkpoint{}, err
			}
			checkpoint.Model = state
			b = b[n:]
		case num == fieldMetadata && typ == protowire.BytesType:
			raw, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return domain.Checkpoint{}, protowire.ParseError(n)
			}
			meta, err := decodeMetadata(raw)
			if err != nil {
				return domain.Checkpoint{}, err
			}
			checkpoint.Metadata = meta
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return domain.Checkpoint{}, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}

	return checkpoint, nil
}

func decodeStateDict(b []byte) (domain.StateDict, error) {
	state := domain.StateDict{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		if num != fieldTensors || typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}

		raw, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		name, tensor, err := decodeTensor(raw)
		if err != nil {
			return nil, err
		}
		if _, dup := state[name]; dup {
			return nil, fmt.Errorf("duplicate tensor %q", name)
		}
		state[name] = tensor
	}

	return state, nil
}

func decodeTensor(b []byte) (string, domain.Tensor, error) {
	var (
		name    string
		hasName bool
		tensor  domain.Tensor
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return "", domain.Tensor{}, protowire.ParseError(n)
		}
		b = b[n:]

		if typ != protowire.BytesType || num < fieldName || num > fieldData {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return "", domain.Tensor{}, protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}

		raw, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return "", domain.Tensor{}, protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case fieldName:
			name = string(raw)
			hasName = true
		case fieldShape:
			for len(raw) > 0 {
				dim, n := protowire.ConsumeVarint(raw)
				if n < 0 {
					return "", domain.Tensor{}, protowire.ParseError(n)
				}
				if dim > domain.MaxDimension {
					return "", domain.Tensor{}, fmt.Errorf("tensor shape dimension %d out of range", dim)
				}
				tensor.Shape = append(tensor.Shape, int(dim))
				raw = raw[n:]
			}
		case fieldData:
			if len(raw)%4 != 0 {
				return "", domain.Tensor{}, fmt.Errorf("tensor data length %d is not a multiple of 4", len(raw))
			}
			tensor.Data = make([]float32, 0, len(raw)/4)
			for len(raw) > 0 {
				bits, n := protowire.ConsumeFixed32(raw)
				if n < 0 {
					return "", domain.Tensor{}, protowire.ParseError(n)
				}
				tensor.Data = append(tensor.Data, math.Float32frombits(bits))
				raw = raw[n:]
			}
		}
	}

	if !hasName {
		return "", domain.Tensor{}, fmt.Errorf("tensor without name")
	}
	if tensor.Data == nil {
		tensor.Data = []float32{}
	}
	if err := tensor.Validate(); err != nil {
		return "", domain.Tensor{}, fmt.Errorf("tensor %q: %w", name, err)
	}

	return name, tensor, nil
}

func decodeMetadata(b []byte) (*domain.CheckpointMetadata, error) {
	meta := &domain.CheckpointMetadata{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		if typ != protowire.VarintType || (num != fieldEpoch && num != fieldTotalSteps) {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}

		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case fieldEpoch:
			meta.Epoch = protowire.DecodeZigZag(v)
		case fieldTotalSteps:
			meta.TotalSteps = protowire.DecodeZigZag(v)
		}
	}

	return meta, nil
}
