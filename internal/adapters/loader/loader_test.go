package loader

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rangeDataset struct {
	n      int
	failAt int
	loads  atomic.Int32
	seeds  chan int64
}

func newRangeDataset(n int) *rangeDataset {
	return &rangeDataset{n: n, failAt: -1}
}

func (d *rangeDataset) Len() int { return d.n }

func (d *rangeDataset) Item(ctx context.Context, index int) (int, error) {
	d.loads.Add(1)
	if index == d.failAt {
		return 0, errors.New("corrupt item")
	}
	if d.seeds != nil {
		if info, ok := WorkerFrom(ctx); ok {
			select {
			case d.seeds <- info.Seed:
			default:
			}
		}
	}
	// Later items finish first so ordering relies on the loader, not timing.
	time.Sleep(time.Duration(d.n-index) * 100 * time.Microsecond)
	return index, nil
}

func collect[B any](t *testing.T, l *Loader[int, B]) []B {
	t.Helper()

	var out []B
	for batch, err := range l.All(context.Background()) {
		require.NoError(t, err)
		out = append(out, batch)
	}
	return out
}

func TestLoaderYieldsBatchesInSamplerOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		n       int
		opts    Options
		want    [][]int
		wantLen int
	}{
		{
			name:    "single worker",
			n:       5,
			opts:    Options{BatchSize: 2, NumWorkers: 1},
			want:    [][]int{{0, 1}, {2, 3}, {4}},
			wantLen: 3,
		},
		{
			name:    "many workers",
			n:       9,
			opts:    Options{BatchSize: 2, NumWorkers: 4},
			want:    [][]int{{0, 1}, {2, 3}, {4, 5}, {6, 7}, {8}},
			wantLen: 5,
		},
		{
			name:    "drop last",
			n:       5,
			opts:    Options{BatchSize: 2, NumWorkers: 3, DropLast: true},
			want:    [][]int{{0, 1}, {2, 3}},
			wantLen: 2,
		},
		{
			name:    "empty dataset",
			n:       0,
			opts:    Options{BatchSize: 3, NumWorkers: 2},
			want:    nil,
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, err := New(newRangeDataset(tt.n), Stack[int], tt.opts, Settings{})
			require.NoError(t, err)

			assert.Equal(t, tt.wantLen, l.Len())
			assert.Equal(t, tt.want, collect(t, l))
		})
	}
}

func TestLoaderShuffleIsSeeded(t *testing.T) {
	t.Parallel()

	opts := Options{BatchSize: 1, NumWorkers: 3, Shuffle: true}
	first, err := New(newRangeDataset(20), Stack[int], opts, Settings{Seed: 7})
	require.NoError(t, err)
	second, err := New(newRangeDataset(20), Stack[int], opts, Settings{Seed: 7})
	require.NoError(t, err)

	a := collect(t, first)
	b := collect(t, second)
	assert.Equal(t, a, b)
	assert.Len(t, a, 20)
	assert.IsType(t, RandomSampler{}, first.Sampler())
}

func TestLoaderStopsOnItemError(t *testing.T) {
	t.Parallel()

	dataset := newRangeDataset(10)
	dataset.failAt = 4
	l, err := New(dataset, Stack[int], Options{BatchSize: 2, NumWorkers: 2}, Settings{})
	require.NoError(t, err)

	var got [][]int
	var gotErr error
	for batch, err := range l.All(context.Background()) {
		if err != nil {
			gotErr = err
			break
		}
		got = append(got, batch)
	}

	require.Error(t, gotErr)
	assert.ErrorContains(t, gotErr, "load item 4")
	assert.Equal(t, [][]int{{0, 1}, {2, 3}}, got)
}

func TestLoaderEarlyBreakReleasesWorkers(t *testing.T) {
	t.Parallel()

	dataset := newRangeDataset(50)
	l, err := New(dataset, Stack[int], Options{BatchSize: 1, NumWorkers: 4}, Settings{})
	require.NoError(t, err)

	count := 0
	for _, err := range l.All(context.Background()) {
		require.NoError(t, err)
		count++
		if count == 3 {
			break
		}
	}

	assert.Equal(t, 3, count)
	assert.Less(t, int(dataset.loads.Load()), 50)
}

func TestLoaderHonoursCancellation(t *testing.T) {
	t.Parallel()

	l, err := New(newRangeDataset(10), Stack[int], Options{BatchSize: 1, NumWorkers: 2}, Settings{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var gotErr error
	for _, err := range l.All(ctx) {
		gotErr = err
		break
	}
	assert.ErrorIs(t, gotErr, context.Canceled)
}

func TestLoaderCollateError(t *testing.T) {
	t.Parallel()

	failing := func(items []int) (int, error) {
		if items[0] == 2 {
			return 0, errors.New("ragged batch")
		}
		return len(items), nil
	}
	l, err := New(newRangeDataset(4), failing, Options{BatchSize: 2, NumWorkers: 1}, Settings{})
	require.NoError(t, err)

	var gotErr error
	for _, err := range l.All(context.Background()) {
		if err != nil {
			gotErr = err
		}
	}
	assert.ErrorContains(t, gotErr, "collate batch 1: ragged batch")
}

func TestLoaderWorkersGetDerivedSeeds(t *testing.T) {
	t.Parallel()

	dataset := newRangeDataset(4)
	dataset.seeds = make(chan int64, 8)
	l, err := New(dataset, Stack[int], Options{BatchSize: 1, NumWorkers: 2}, Settings{Seed: 100})
	require.NoError(t, err)
	collect(t, l)
	close(dataset.seeds)

	seen := map[int64]bool{}
	for seed := range dataset.seeds {
		seen[seed] = true
	}
	assert.Equal(t, map[int64]bool{100: true, 101: true}, seen)
	assert.Equal(t, int64(103), DeriveWorkerSeed(100, 3))
}

func TestNewRejectsInvalidConfiguration(t *testing.T) {
	t.Parallel()

	_, err := New(newRangeDataset(1), Stack[int], Options{BatchSize: 0}, Settings{})
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = New[int, []int](nil, Stack[int], DefaultOptions(), Settings{})
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, err = New[int, []int](newRangeDataset(1), nil, DefaultOptions(), Settings{})
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestNewPicksSamplerForTopology(t *testing.T) {
	t.Parallel()

	distributed := domain.Topology{Rank: 1, WorldSize: 2}

	l, err := New(newRangeDataset(5), Stack[int], DefaultOptions(), Settings{Topology: distributed})
	require.NoError(t, err)
	assert.Equal(t, DistributedSampler{Rank: 1, WorldSize: 2}, l.Sampler())
	assert.Equal(t, [][]int{{1}, {3}, {0}}, collect(t, l))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	custom := SequentialSampler{}
	l, err = New(newRangeDataset(5), Stack[int], DefaultOptions(), Settings{Topology: distributed, Sampler: custom, Logger: logger})
	require.NoError(t, err)
	assert.Equal(t, custom, l.Sampler())
	assert.Contains(t, logs.String(), "Custom sampler is used in distributed mode")
}

func TestDistributedSamplerPartitionsWithPadding(t *testing.T) {
	t.Parallel()

	seen := map[int]int{}
	for rank := range 3 {
		indices := DistributedSampler{Rank: rank, WorldSize: 3}.Indices(7)
		assert.Len(t, indices, 3)
		for _, index := range indices {
			seen[index]++
		}
	}

	assert.Len(t, seen, 7)
	assert.Equal(t, 2, seen[0])
	assert.Equal(t, 2, seen[1])
	assert.Equal(t, 1, seen[6])
}

func TestOptionsBindFlags(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	opts.BindFlags(fs)

	require.NoError(t, fs.Parse([]string{"--batch_size=4", "--num_workers", "3", "--shuffle", "--drop_last"}))
	assert.Equal(t, Options{BatchSize: 4, NumWorkers: 3, Shuffle: true, DropLast: true}, opts)
}
