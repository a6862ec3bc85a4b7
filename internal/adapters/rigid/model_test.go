package rigid

import (
	"testing"

	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func translationState(tx, ty, tz float32) domain.StateDict {
	return domain.StateDict{
		ParamRotation:    {Shape: []int{3, 3}, Data: []float32{0, -1, 0, 1, 0, 0, 0, 0, 1}},
		ParamTranslation: {Shape: []int{3}, Data: []float32{tx, ty, tz}},
	}
}

func TestModelApply(t *testing.T) {
	t.Parallel()

	m := NewModel()
	assert.Equal(t, domain.Point3{1, 2, 3}, m.Apply(domain.Point3{1, 2, 3}))

	require.NoError(t, m.LoadStateDict(translationState(1, 0, -1)))
	assert.Equal(t, domain.Point3{-1, 1, 2}, m.Apply(domain.Point3{1, 2, 3}))
}

func TestModelLoadStateDictRejectsBadParameters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		state   domain.StateDict
		wantMsg string
	}{
		{
			name:    "missing translation",
			state:   domain.StateDict{ParamRotation: translationState(0, 0, 0)[ParamRotation]},
			wantMsg: `missing parameter "transform.translation"`,
		},
		{
			name: "wrong rotation shape",
			state: domain.StateDict{
				ParamRotation:    {Shape: []int{9}, Data: make([]float32, 9)},
				ParamTranslation: {Shape: []int{3}, Data: make([]float32, 3)},
			},
			wantMsg: `parameter "transform.rotation": shape [9], want [3 3]`,
		},
		{
			name: "short data",
			state: domain.StateDict{
				ParamRotation:    {Shape: []int{3, 3}, Data: make([]float32, 9)},
				ParamTranslation: {Shape: []int{3}, Data: make([]float32, 2)},
			},
			wantMsg: `parameter "transform.translation"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := NewModel()
			err := m.LoadStateDict(tt.state)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.wantMsg)
			assert.Equal(t, domain.Point3{1, 1, 1}, m.Apply(domain.Point3{1, 1, 1}))
		})
	}
}

func TestModelStateDictRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewModel()
	state := translationState(4, 5, 6)
	require.NoError(t, m.LoadStateDict(state))
	assert.Equal(t, state, m.StateDict())

	identity := IdentityCheckpoint()
	assert.Equal(t, []string{ParamRotation, ParamTranslation}, identity.Model.Keys())
	assert.Equal(t, m.ParameterNames(), identity.Model.Keys())
	assert.NotNil(t, identity.Metadata)
}

func TestModelTrainingFlag(t *testing.T) {
	t.Parallel()

	m := NewModel()
	assert.True(t, m.Training())
	m.SetTraining(false)
	assert.False(t, m.Training())
	assert.Contains(t, m.String(), "RigidTransform")
}
