package domain

// RunConfig is the resolved configuration of one run. It is produced once
// before the driver starts and passed by value afterwards.
type RunConfig struct {
	Exp    ExperimentConfig
	Test   TestConfig
	Tester TesterConfig
}

type ExperimentConfig struct {
	Name          string
	RootDir       string
	LogDir        string
	CheckpointDir string
	OutputDir     string
	Seed          int64
}

type TestConfig struct {
	DatasetDir      string
	BatchSize       int
	NumWorkers      int
	Shuffle         bool
	LogStride       int
	InlierThreshold float64
}

type TesterConfig struct {
	CheckpointExt string
}

// Topology describes this process's place in a distributed launch.
type Topology struct {
	Rank      int
	LocalRank int
	WorldSize int
}

func (t Topology) IsDistributed() bool {
	return t.WorldSize > 1
}

func (t Topology) IsMain() bool {
	return t.Rank == 0
}
