package chain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	binarycodec "github.com/bnema/vision3d-engine/internal/adapters/checkpoint/binary"
	jsoncodec "github.com/bnema/vision3d-engine/internal/adapters/checkpoint/json"
	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/bnema/vision3d-engine/internal/ports"
)

type Codec interface {
	ports.CheckpointReader
	ports.CheckpointWriter
}

// Store reads through a primary codec and falls back to a second one. Writes
// go to the fallback only for ".json" paths.
type Store struct {
	primary  Codec
	fallback Codec
}

var (
	_ ports.CheckpointReader = (*Store)(nil)
	_ ports.CheckpointWriter = (*Store)(nil)
)

var (
	errNilPrimaryCodec  = errors.New("primary checkpoint codec is nil")
	errNilFallbackCodec = errors.New("fallback checkpoint codec is nil")
)

func NewStore(primary Codec, fallback Codec) *Store {
	store, err := NewStoreChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return store
}

func NewStoreChecked(primary Codec, fallback Codec) (*Store, error) {
	if primary == nil {
		return nil, errNilPrimaryCodec
	}
	if fallback == nil {
		return nil, errNilFallbackCodec
	}

	return &Store{primary: primary, fallback: fallback}, nil
}

func NewBinaryFirstWithJSONFallback() *Store {
	return NewStore(binarycodec.NewCodec(), jsoncodec.NewCodec())
}

func (s *Store) Read(ctx context.Context, path string) (domain.Checkpoint, error) {
	checkpoint, err := s.primary.Read(ctx, path)
	if err == nil {
		return checkpoint, nil
	}
	if shouldSkipFallback(err) {
		return domain.Checkpoint{}, err
	}

	fallbackCheckpoint, fallbackErr := s.fallback.Read(ctx, path)
	if fallbackErr == nil {
		return fallbackCheckpoint, nil
	}

	return domain.Checkpoint{}, domain.IOError(
		fmt.Errorf("primary codec read failed: %w; fallback codec read failed: %w", err, fallbackErr),
		"read checkpoint %q", path,
	)
}

func (s *Store) Write(ctx context.Context, path string, checkpoint domain.Checkpoint) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return s.fallback.Write(ctx, path, checkpoint)
	}

	return s.primary.Write(ctx, path, checkpoint)
}

func shouldSkipFallback(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, os.ErrNotExist)
}
