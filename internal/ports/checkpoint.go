package ports

import (
	"context"

	"github.com/bnema/vision3d-engine/internal/domain"
)

type CheckpointReader interface {
	Read(ctx context.Context, path string) (domain.Checkpoint, error)
}

type CheckpointWriter interface {
	Write(ctx context.Context, path string, checkpoint domain.Checkpoint) error
}
