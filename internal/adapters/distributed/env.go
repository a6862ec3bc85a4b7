// Package distributed reads the process topology exported by distributed
// launchers (torchrun style RANK, WORLD_SIZE and LOCAL_RANK variables).
package distributed

import (
	"fmt"

	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/spf13/viper"
)

const (
	EnvRank      = "RANK"
	EnvWorldSize = "WORLD_SIZE"
	EnvLocalRank = "LOCAL_RANK"
)

// Detect returns a single process topology when no launcher variables are set.
func Detect() (domain.Topology, error) {
	return DetectWith(viper.New())
}

func DetectWith(v *viper.Viper) (domain.Topology, error) {
	for key, env := range map[string]string{"rank": EnvRank, "world_size": EnvWorldSize, "local_rank": EnvLocalRank} {
		if err := v.BindEnv(key, env); err != nil {
			return domain.Topology{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}
	v.SetDefault("rank", 0)
	v.SetDefault("world_size", 1)
	v.SetDefault("local_rank", 0)

	topology := domain.Topology{
		Rank:      v.GetInt("rank"),
		LocalRank: v.GetInt("local_rank"),
		WorldSize: v.GetInt("world_size"),
	}

	if topology.WorldSize < 1 {
		return domain.Topology{}, domain.ConfigurationError("%s must be positive, got %d", EnvWorldSize, topology.WorldSize)
	}
	if topology.Rank < 0 || topology.Rank >= topology.WorldSize {
		return domain.Topology{}, domain.ConfigurationError("%s %d out of range for world size %d", EnvRank, topology.Rank, topology.WorldSize)
	}
	if topology.LocalRank < 0 {
		return domain.Topology{}, domain.ConfigurationError("%s must not be negative, got %d", EnvLocalRank, topology.LocalRank)
	}

	return topology, nil
}
