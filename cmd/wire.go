package cmd

import (
	"fmt"

	binarycodec "github.com/bnema/vision3d-engine/internal/adapters/checkpoint/binary"
	chainstore "github.com/bnema/vision3d-engine/internal/adapters/checkpoint/chain"
	jsoncodec "github.com/bnema/vision3d-engine/internal/adapters/checkpoint/json"
	"github.com/bnema/vision3d-engine/internal/adapters/distributed"
	summaryadapter "github.com/bnema/vision3d-engine/internal/adapters/render/summary"
	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/bnema/vision3d-engine/internal/ports"
)

type app struct {
	checkpoints     *chainstore.Store
	summaryRenderer func(domain.Summary, summaryadapter.RenderOptions) (string, error)
	detectTopology  func() (domain.Topology, error)
	clock           ports.Clock
}

func wireApp() (*app, error) {
	checkpoints, err := chainstore.NewStoreChecked(binarycodec.NewCodec(), jsoncodec.NewCodec())
	if err != nil {
		return nil, fmt.Errorf("wire checkpoint codec chain: %w", err)
	}

	return &app{
		checkpoints:     checkpoints,
		summaryRenderer: summaryadapter.Render,
		detectTopology:  distributed.Detect,
		clock:           ports.SystemClock{},
	}, nil
}
