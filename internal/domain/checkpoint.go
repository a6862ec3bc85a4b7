package domain

import (
	"fmt"
	"math"
	"slices"
)

// Tensor is a dense float32 parameter in row-major order.
type Tensor struct {
	Shape []int
	Data  []float32
}

// MaxDimension bounds a single dimension of a tensor shape.
const MaxDimension = math.MaxInt32

// NumElements is the product of the dimensions; an empty shape is a scalar.
func (t Tensor) NumElements() int {
	n := 1
	for _, dim := range t.Shape {
		n *= dim
	}
	return n
}

func (t Tensor) Validate() error {
	n := 1
	for _, dim := range t.Shape {
		if dim < 0 {
			return fmt.Errorf("negative dimension in shape %v", t.Shape)
		}
		if dim > MaxDimension {
			return fmt.Errorf("dimension %d in shape %v exceeds %d", dim, t.Shape, MaxDimension)
		}
		if dim != 0 && n > math.MaxInt/dim {
			return fmt.Errorf("shape %v overflows the element count", t.Shape)
		}
		n *= dim
	}
	if n != len(t.Data) {
		return fmt.Errorf("shape %v needs %d values, got %d", t.Shape, n, len(t.Data))
	}

	return nil
}

func (t Tensor) SameShape(other Tensor) bool {
	return slices.Equal(t.Shape, other.Shape)
}

// StateDict maps parameter names to tensors.
type StateDict map[string]Tensor

func (s StateDict) Keys() []string {
	keys := make([]string, 0, len(s))
	for name := range s {
		keys = append(keys, name)
	}
	slices.Sort(keys)

	return keys
}

type CheckpointMetadata struct {
	Epoch      int64
	TotalSteps int64
}

// Checkpoint is a persisted snapshot. A nil Model means the artifact had no
// model section at all.
type Checkpoint struct {
	Model    StateDict
	Metadata *CheckpointMetadata
}
