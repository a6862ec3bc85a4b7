package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/bnema/vision3d-engine/internal/ports"
)

type StateLoader struct {
	reader ports.CheckpointReader
	logger *slog.Logger
}

func NewStateLoader(reader ports.CheckpointReader, logger *slog.Logger) *StateLoader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &StateLoader{reader: reader, logger: logger}
}

// Load reads the checkpoint at path and applies its parameters to model under
// strict name matching. The model is untouched unless every name matches.
func (l *StateLoader) Load(ctx context.Context, path string, model ports.Model) (*domain.CheckpointMetadata, error) {
	l.logger.InfoContext(ctx, fmt.Sprintf("Loading from %q.", path))

	checkpoint, err := l.reader.Read(ctx, path)
	if err != nil {
		if domain.KindOf(err) != nil {
			return nil, err
		}
		return nil, domain.IOError(err, "read checkpoint %q", path)
	}

	if checkpoint.Model == nil {
		return nil, domain.SchemaError("checkpoint %q has no model section", path)
	}

	match := domain.MatchKeys(model.ParameterNames(), checkpoint.Model.Keys())
	if !match.OK() {
		l.logger.ErrorContext(ctx, "strict load rejected checkpoint",
			"path", path,
			"missing", match.Missing,
			"unexpected", match.Unexpected,
		)
		return nil, match.Err()
	}

	if err := model.LoadStateDict(checkpoint.Model); err != nil {
		return nil, &domain.Error{Kind: domain.ErrSchema, Msg: fmt.Sprintf("apply state dict from %q", path), Err: err}
	}
	l.logger.InfoContext(ctx, "Model has been loaded.")

	if checkpoint.Metadata != nil {
		l.logger.InfoContext(ctx, fmt.Sprintf(
			"Checkpoint metadata: epoch: %d, total_steps: %d.",
			checkpoint.Metadata.Epoch,
			checkpoint.Metadata.TotalSteps,
		))
	}

	return checkpoint.Metadata, nil
}
