package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/bnema/vision3d-engine/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func mockAnyContext() interface{} {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func knownState() domain.StateDict {
	return domain.StateDict{
		"encoder.weight": {Shape: []int{2, 2}, Data: []float32{1, 2, 3, 4}},
		"encoder.bias":   {Shape: []int{2}, Data: []float32{0.5, -0.5}},
	}
}

func TestStateLoaderAppliesExactMapping(t *testing.T) {
	reader := mocks.NewMockCheckpointReader(t)
	model := mocks.NewMockModel(t)
	loader := NewStateLoader(reader, nil)

	state := knownState()
	reader.EXPECT().Read(mockAnyContext(), "ckpt/epoch-1.pth").Return(domain.Checkpoint{
		Model:    state,
		Metadata: &domain.CheckpointMetadata{Epoch: 1, TotalSteps: 500},
	}, nil).Once()
	model.EXPECT().ParameterNames().Return([]string{"encoder.bias", "encoder.weight"}).Once()

	var applied domain.StateDict
	model.EXPECT().LoadStateDict(mock.Anything).RunAndReturn(func(sd domain.StateDict) error {
		applied = sd
		return nil
	}).Once()

	meta, err := loader.Load(context.Background(), "ckpt/epoch-1.pth", model)
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, int64(1), meta.Epoch)
	assert.Equal(t, int64(500), meta.TotalSteps)
	assert.Equal(t, state, applied)
}

func TestStateLoaderStrictMismatch(t *testing.T) {
	testCases := []struct {
		name     string
		declared []string
		wantErr  string
	}{
		{name: "artifact has extra key", declared: []string{"encoder.weight"}, wantErr: "unexpected keys: encoder.bias"},
		{name: "artifact lacks key", declared: []string{"encoder.weight", "encoder.bias", "head.weight"}, wantErr: "missing keys: head.weight"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reader := mocks.NewMockCheckpointReader(t)
			model := mocks.NewMockModel(t)
			loader := NewStateLoader(reader, nil)

			reader.EXPECT().Read(mockAnyContext(), "x.pth").Return(domain.Checkpoint{Model: knownState()}, nil).Once()
			model.EXPECT().ParameterNames().Return(tc.declared).Once()

			_, err := loader.Load(context.Background(), "x.pth", model)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrSchema)
			assert.ErrorContains(t, err, tc.wantErr)
			model.AssertNotCalled(t, "LoadStateDict", mock.Anything)
		})
	}
}

func TestStateLoaderWithoutModelSectionIsSchemaError(t *testing.T) {
	reader := mocks.NewMockCheckpointReader(t)
	model := mocks.NewMockModel(t)
	loader := NewStateLoader(reader, nil)

	reader.EXPECT().Read(mockAnyContext(), "empty.pth").Return(domain.Checkpoint{
		Metadata: &domain.CheckpointMetadata{Epoch: 3},
	}, nil).Once()

	_, err := loader.Load(context.Background(), "empty.pth", model)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchema)
	assert.ErrorContains(t, err, "no model section")
}

func TestStateLoaderWrapsReaderFailuresAsIOError(t *testing.T) {
	reader := mocks.NewMockCheckpointReader(t)
	model := mocks.NewMockModel(t)
	loader := NewStateLoader(reader, nil)

	cause := errors.New("unexpected EOF")
	reader.EXPECT().Read(mockAnyContext(), "broken.pth").Return(domain.Checkpoint{}, cause).Once()

	_, err := loader.Load(context.Background(), "broken.pth", model)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrIO)
	assert.ErrorIs(t, err, cause)
	assert.ErrorContains(t, err, "broken.pth")
}

func TestStateLoaderKeepsTypedReaderErrors(t *testing.T) {
	reader := mocks.NewMockCheckpointReader(t)
	model := mocks.NewMockModel(t)
	loader := NewStateLoader(reader, nil)

	typed := domain.SchemaError("tensor %q has 3 values for shape [2 2]", "w")
	reader.EXPECT().Read(mockAnyContext(), "bad.pth").Return(domain.Checkpoint{}, typed).Once()

	_, err := loader.Load(context.Background(), "bad.pth", model)
	assert.Same(t, typed, err)
}

func TestStateLoaderShapeRejectionIsSchemaError(t *testing.T) {
	reader := mocks.NewMockCheckpointReader(t)
	model := mocks.NewMockModel(t)
	loader := NewStateLoader(reader, nil)

	reader.EXPECT().Read(mockAnyContext(), "x.pth").Return(domain.Checkpoint{Model: knownState()}, nil).Once()
	model.EXPECT().ParameterNames().Return([]string{"encoder.weight", "encoder.bias"}).Once()
	model.EXPECT().LoadStateDict(mock.Anything).Return(errors.New("encoder.weight: want shape [3 3]")).Once()

	_, err := loader.Load(context.Background(), "x.pth", model)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrSchema)
	assert.ErrorContains(t, err, "want shape [3 3]")
}
