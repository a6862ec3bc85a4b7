package loader

import (
	"math/rand/v2"

	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/bnema/vision3d-engine/internal/ports"
)

var (
	_ ports.Sampler = SequentialSampler{}
	_ ports.Sampler = RandomSampler{}
	_ ports.Sampler = DistributedSampler{}
)

type SequentialSampler struct{}

func (SequentialSampler) Indices(n int) []int {
	indices := make([]int, max(n, 0))
	for i := range indices {
		indices[i] = i
	}
	return indices
}

// RandomSampler yields the same permutation for the same seed.
type RandomSampler struct {
	Seed int64
}

func (s RandomSampler) Indices(n int) []int {
	if n <= 0 {
		return []int{}
	}
	return newRand(s.Seed).Perm(n)
}

// DistributedSampler gives each rank a disjoint, equally sized share of the
// dataset. The index list is padded by wrapping around so every rank sees
// ceil(n/world) items.
type DistributedSampler struct {
	Rank      int
	WorldSize int
	Shuffle   bool
	Seed      int64
}

func NewDistributedSampler(topology domain.Topology, shuffle bool, seed int64) DistributedSampler {
	return DistributedSampler{
		Rank:      topology.Rank,
		WorldSize: max(topology.WorldSize, 1),
		Shuffle:   shuffle,
		Seed:      seed,
	}
}

func (s DistributedSampler) Indices(n int) []int {
	if n <= 0 {
		return []int{}
	}

	world := max(s.WorldSize, 1)
	var order []int
	if s.Shuffle {
		order = RandomSampler{Seed: s.Seed}.Indices(n)
	} else {
		order = SequentialSampler{}.Indices(n)
	}

	perRank := (n + world - 1) / world
	total := perRank * world
	for i := 0; len(order) < total; i++ {
		order = append(order, order[i%n])
	}

	indices := make([]int, 0, perRank)
	for i := s.Rank; i < total; i += world {
		indices = append(indices, order[i])
	}
	return indices
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}
