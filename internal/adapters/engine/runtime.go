package engine

import (
	"sync/atomic"

	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/bnema/vision3d-engine/internal/ports"
)

// Runtime holds the process-wide execution switches. Models and testers read
// them through Mode; nothing here performs tensor work.
type Runtime struct {
	gradEnabled   atomic.Bool
	deterministic atomic.Bool
	seed          atomic.Int64
}

var _ ports.Engine = (*Runtime)(nil)

func NewRuntime() *Runtime {
	r := &Runtime{}
	r.gradEnabled.Store(true)
	return r
}

func (r *Runtime) Setup(seed int64, deterministic bool) error {
	if seed < 0 {
		return domain.ConfigurationError("seed must not be negative, got %d", seed)
	}

	r.seed.Store(seed)
	r.deterministic.Store(deterministic)

	return nil
}

func (r *Runtime) SetGradEnabled(enabled bool) {
	r.gradEnabled.Store(enabled)
}

func (r *Runtime) Mode() domain.ExecutionMode {
	return domain.ExecutionMode{
		GradEnabled:   r.gradEnabled.Load(),
		Deterministic: r.deterministic.Load(),
		Seed:          r.seed.Load(),
	}
}
