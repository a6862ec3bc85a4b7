package ports

import "github.com/bnema/vision3d-engine/internal/domain"

// Engine owns the process-wide execution switches of the tensor backend.
type Engine interface {
	Setup(seed int64, deterministic bool) error
	SetGradEnabled(enabled bool)
	Mode() domain.ExecutionMode
}
