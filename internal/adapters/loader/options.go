package loader

import "github.com/spf13/pflag"

type Options struct {
	BatchSize  int
	NumWorkers int
	Shuffle    bool
	DropLast   bool
}

func DefaultOptions() Options {
	return Options{BatchSize: 1, NumWorkers: 1}
}

func (o *Options) BindFlags(fs *pflag.FlagSet) {
	fs.IntVar(&o.BatchSize, "batch_size", o.BatchSize, "Number of items per batch")
	fs.IntVar(&o.NumWorkers, "num_workers", o.NumWorkers, "Number of concurrent loading workers")
	fs.BoolVar(&o.Shuffle, "shuffle", o.Shuffle, "Visit the dataset in a seeded random order")
	fs.BoolVar(&o.DropLast, "drop_last", o.DropLast, "Drop the trailing incomplete batch")
}
