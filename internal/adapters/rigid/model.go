// Package rigid is the reference evaluation task: a rigid transform applied
// to point correspondences.
package rigid

import (
	"fmt"
	"slices"
	"sync"

	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/bnema/vision3d-engine/internal/ports"
)

const (
	ParamRotation    = "transform.rotation"
	ParamTranslation = "transform.translation"
)

var (
	rotationShape    = []int{3, 3}
	translationShape = []int{3}
)

// Model maps a point p to R*p + t.
type Model struct {
	mu          sync.RWMutex
	rotation    [3][3]float64
	translation [3]float64
	training    bool
}

var _ ports.Model = (*Model)(nil)

func NewModel() *Model {
	return &Model{
		rotation: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		training: true,
	}
}

func (m *Model) ParameterNames() []string {
	return []string{ParamRotation, ParamTranslation}
}

func (m *Model) LoadStateDict(state domain.StateDict) error {
	rotation, err := parameter(state, ParamRotation, rotationShape)
	if err != nil {
		return err
	}
	translation, err := parameter(state, ParamTranslation, translationShape)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range 3 {
		for j := range 3 {
			m.rotation[i][j] = float64(rotation.Data[i*3+j])
		}
		m.translation[i] = float64(translation.Data[i])
	}

	return nil
}

func parameter(state domain.StateDict, name string, shape []int) (domain.Tensor, error) {
	tensor, ok := state[name]
	if !ok {
		return domain.Tensor{}, fmt.Errorf("missing parameter %q", name)
	}
	if !slices.Equal(tensor.Shape, shape) {
		return domain.Tensor{}, fmt.Errorf("parameter %q: shape %v, want %v", name, tensor.Shape, shape)
	}
	if err := tensor.Validate(); err != nil {
		return domain.Tensor{}, fmt.Errorf("parameter %q: %w", name, err)
	}

	return tensor, nil
}

func (m *Model) SetTraining(training bool) {
	m.mu.Lock()
	m.training = training
	m.mu.Unlock()
}

func (m *Model) Training() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.training
}

func (m *Model) Apply(p domain.Point3) domain.Point3 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out domain.Point3
	for i := range 3 {
		out[i] = m.rotation[i][0]*p[0] + m.rotation[i][1]*p[1] + m.rotation[i][2]*p[2] + m.translation[i]
	}
	return out
}

// StateDict exports the current parameters.
func (m *Model) StateDict() domain.StateDict {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rotation := make([]float32, 0, 9)
	for i := range 3 {
		for j := range 3 {
			rotation = append(rotation, float32(m.rotation[i][j]))
		}
	}
	translation := []float32{float32(m.translation[0]), float32(m.translation[1]), float32(m.translation[2])}

	return domain.StateDict{
		ParamRotation:    {Shape: slices.Clone(rotationShape), Data: rotation},
		ParamTranslation: {Shape: slices.Clone(translationShape), Data: translation},
	}
}

func (m *Model) String() string {
	return "RigidTransform(\n  (transform): rotation [3, 3], translation [3]\n)"
}

// IdentityCheckpoint is a checkpoint whose parameters leave points unchanged.
func IdentityCheckpoint() domain.Checkpoint {
	return domain.Checkpoint{
		Model:    NewModel().StateDict(),
		Metadata: &domain.CheckpointMetadata{},
	}
}
