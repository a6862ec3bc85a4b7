package loader

import (
	"context"
	"math/rand/v2"
)

// WorkerInfo describes the loading worker an item is produced on. Datasets
// that draw random numbers should use Rand so runs stay reproducible.
type WorkerInfo struct {
	ID   int
	Seed int64
	Rand *rand.Rand
}

type workerKey struct{}

// DeriveWorkerSeed returns the seed used by worker w of a loader seeded with base.
func DeriveWorkerSeed(base int64, worker int) int64 {
	return base + int64(worker)
}

func withWorker(ctx context.Context, info WorkerInfo) context.Context {
	return context.WithValue(ctx, workerKey{}, info)
}

// WorkerFrom returns the worker running the current Dataset.Item call.
func WorkerFrom(ctx context.Context) (WorkerInfo, bool) {
	info, ok := ctx.Value(workerKey{}).(WorkerInfo)
	return info, ok
}
