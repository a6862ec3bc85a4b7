package loader

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"

	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/bnema/vision3d-engine/internal/ports"
	"github.com/sourcegraph/conc"
)

var errWorkerStopped = errors.New("loader worker stopped early")

// Collate merges the items of one batch.
type Collate[T, B any] func(items []T) (B, error)

// Stack is the default collate function: the batch is the item slice itself.
func Stack[T any](items []T) ([]T, error) {
	return slices.Clone(items), nil
}

type Settings struct {
	// Sampler overrides the sampler picked from Options and Topology.
	Sampler  ports.Sampler
	Topology domain.Topology
	Seed     int64
	Logger   *slog.Logger
}

// Loader batches a dataset and loads the batches on a pool of workers. Batch
// b is loaded by worker b mod NumWorkers and batches are yielded in sampler
// order.
type Loader[T, B any] struct {
	dataset ports.Dataset[T]
	collate Collate[T, B]
	sampler ports.Sampler
	opts    Options
	seed    int64
}

var _ ports.DataSource[[]int] = (*Loader[int, []int])(nil)

func New[T, B any](dataset ports.Dataset[T], collate Collate[T, B], opts Options, settings Settings) (*Loader[T, B], error) {
	if dataset == nil {
		return nil, domain.ConfigurationError("loader dataset is nil")
	}
	if collate == nil {
		return nil, domain.ConfigurationError("loader collate function is nil")
	}
	if opts.BatchSize < 1 {
		return nil, domain.ConfigurationError("batch size must be positive, got %d", opts.BatchSize)
	}
	if opts.NumWorkers < 1 {
		opts.NumWorkers = 1
	}

	logger := settings.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	sampler := settings.Sampler
	switch {
	case settings.Topology.IsDistributed() && sampler != nil:
		logger.Warn("Custom sampler is used in distributed mode. Make sure it shards the dataset across ranks.")
	case settings.Topology.IsDistributed():
		sampler = NewDistributedSampler(settings.Topology, opts.Shuffle, settings.Seed)
	case sampler == nil && opts.Shuffle:
		sampler = RandomSampler{Seed: settings.Seed}
	case sampler == nil:
		sampler = SequentialSampler{}
	}

	return &Loader[T, B]{
		dataset: dataset,
		collate: collate,
		sampler: sampler,
		opts:    opts,
		seed:    settings.Seed,
	}, nil
}

func (l *Loader[T, B]) Sampler() ports.Sampler {
	return l.sampler
}

// Len is the number of batches one pass yields.
func (l *Loader[T, B]) Len() int {
	return len(l.batches())
}

func (l *Loader[T, B]) batches() [][]int {
	indices := l.sampler.Indices(l.dataset.Len())
	batches := make([][]int, 0, (len(indices)+l.opts.BatchSize-1)/l.opts.BatchSize)
	for chunk := range slices.Chunk(indices, l.opts.BatchSize) {
		if l.opts.DropLast && len(chunk) < l.opts.BatchSize {
			break
		}
		batches = append(batches, chunk)
	}
	return batches
}

type loaded[B any] struct {
	batch B
	err   error
}

// All yields every batch once. The first loading error is yielded and ends the
// pass; stopping early cancels the workers.
func (l *Loader[T, B]) All(ctx context.Context) iter.Seq2[B, error] {
	return func(yield func(B, error) bool) {
		batches := l.batches()
		if len(batches) == 0 {
			return
		}

		ctx, cancel := context.WithCancel(ctx)
		workers := min(l.opts.NumWorkers, len(batches))
		channels := make([]chan loaded[B], workers)
		for w := range channels {
			channels[w] = make(chan loaded[B], 2)
		}

		var wg conc.WaitGroup
		defer func() {
			cancel()
			wg.Wait()
		}()

		for w := range workers {
			wg.Go(func() {
				l.work(ctx, w, workers, batches, channels[w])
			})
		}

		var zero B
		for b := range batches {
			select {
			case <-ctx.Done():
				yield(zero, ctx.Err())
				return
			case result, ok := <-channels[b%workers]:
				if !ok {
					err := ctx.Err()
					if err == nil {
						err = errWorkerStopped
					}
					yield(zero, err)
					return
				}
				if result.err != nil {
					yield(zero, result.err)
					return
				}
				if !yield(result.batch, nil) {
					return
				}
			}
		}
	}
}

func (l *Loader[T, B]) work(ctx context.Context, worker, workers int, batches [][]int, out chan<- loaded[B]) {
	defer close(out)

	seed := DeriveWorkerSeed(l.seed, worker)
	ctx = withWorker(ctx, WorkerInfo{ID: worker, Seed: seed, Rand: newRand(seed)})

	for b := worker; b < len(batches); b += workers {
		batch, err := l.load(ctx, b, batches[b])
		select {
		case out <- loaded[B]{batch: batch, err: err}:
		case <-ctx.Done():
			return
		}
		if err != nil {
			return
		}
	}
}

func (l *Loader[T, B]) load(ctx context.Context, b int, indices []int) (B, error) {
	var zero B
	items := make([]T, 0, len(indices))
	for _, index := range indices {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		item, err := l.dataset.Item(ctx, index)
		if err != nil {
			return zero, fmt.Errorf("load item %d: %w", index, err)
		}
		items = append(items, item)
	}

	batch, err := l.collate(items)
	if err != nil {
		return zero, fmt.Errorf("collate batch %d: %w", b, err)
	}
	return batch, nil
}
