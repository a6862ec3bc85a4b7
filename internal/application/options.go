package application

import (
	"github.com/spf13/pflag"
)

const DefaultCheckpointExt = "pth"

// TesterOptions are the command-line options a tester run consumes.
type TesterOptions struct {
	Checkpoint         string
	TestEpoch          *int
	CudnnDeterministic bool
}

// BindFlags registers the tester flags on fs and returns a function that
// yields the populated options once fs has been parsed.
func (o *TesterOptions) BindFlags(fs *pflag.FlagSet) func() TesterOptions {
	var epoch int

	fs.StringVar(&o.Checkpoint, "checkpoint", "", "load from checkpoint")
	fs.IntVar(&epoch, "test_epoch", 0, "test epoch")
	fs.BoolVar(&o.CudnnDeterministic, "cudnn_deterministic", true, "use deterministic method")

	return func() TesterOptions {
		resolved := *o
		resolved.TestEpoch = nil
		if fs.Changed("test_epoch") {
			value := epoch
			resolved.TestEpoch = &value
		}
		return resolved
	}
}
