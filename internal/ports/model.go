package ports

import "github.com/bnema/vision3d-engine/internal/domain"

// Model is the narrow surface the harness needs from a trained network.
type Model interface {
	ParameterNames() []string
	LoadStateDict(state domain.StateDict) error
	SetTraining(training bool)
}
