package ports

import (
	"context"
	"iter"
)

// Dataset gives random access to test items.
type Dataset[T any] interface {
	Len() int
	Item(ctx context.Context, index int) (T, error)
}

// DataSource yields items sequentially, in order.
type DataSource[D any] interface {
	Len() int
	All(ctx context.Context) iter.Seq2[D, error]
}

// Sampler decides which dataset indices are visited and in which order.
type Sampler interface {
	Indices(n int) []int
}
