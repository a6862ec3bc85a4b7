package distributed

import (
	"testing"

	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    domain.Topology
		wantErr bool
	}{
		{
			name: "single process",
			env:  map[string]string{},
			want: domain.Topology{Rank: 0, LocalRank: 0, WorldSize: 1},
		},
		{
			name: "second rank of four",
			env:  map[string]string{EnvRank: "1", EnvWorldSize: "4", EnvLocalRank: "1"},
			want: domain.Topology{Rank: 1, LocalRank: 1, WorldSize: 4},
		},
		{
			name:    "rank outside world",
			env:     map[string]string{EnvRank: "4", EnvWorldSize: "4"},
			wantErr: true,
		},
		{
			name:    "zero world size",
			env:     map[string]string{EnvWorldSize: "0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range []string{EnvRank, EnvWorldSize, EnvLocalRank} {
				t.Setenv(key, "")
			}
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			got, err := Detect()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrConfiguration)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want.WorldSize > 1, got.IsDistributed())
			assert.Equal(t, tt.want.Rank == 0, got.IsMain())
		})
	}
}
