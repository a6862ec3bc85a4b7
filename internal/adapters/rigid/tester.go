package rigid

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bnema/vision3d-engine/internal/adapters/storage/file"
	"github.com/bnema/vision3d-engine/internal/application"
	"github.com/bnema/vision3d-engine/internal/domain"
)

const (
	MetricRMSE        = "rmse"
	MetricInlierRatio = "inlier_ratio"

	correspondenceKey = "correspondences"
)

// Batch is what the loader yields with the default Stack collate.
type Batch = []Sample

// Prediction holds the transformed source points of each sample of a batch.
type Prediction = [][]domain.Point3

type ItemResult struct {
	Iteration int
	Names     []string
	Metrics   domain.Result
}

type TesterOptions struct {
	InlierThreshold float64
	// Exports receives one OBJ mesh per sample linking each transformed
	// source point to its target. Nil disables the export.
	Exports *file.Store
}

type Tester struct {
	model     *Model
	threshold float64
	exportDir string

	mu      sync.Mutex
	records []ItemResult
}

var (
	_ application.Tester[Batch, Prediction]            = (*Tester)(nil)
	_ application.BeforeTestEpochHook                  = (*Tester)(nil)
	_ application.AfterTestStepHook[Batch, Prediction] = (*Tester)(nil)
	_ application.LogStringer[Batch, Prediction]       = (*Tester)(nil)
)

func NewTester(model *Model, opts TesterOptions) (*Tester, error) {
	if model == nil {
		return nil, domain.ConfigurationError("rigid tester needs a model")
	}
	if opts.InlierThreshold <= 0 {
		return nil, domain.ConfigurationError("inlier threshold must be positive, got %g", opts.InlierThreshold)
	}

	tester := &Tester{model: model, threshold: opts.InlierThreshold}
	if opts.Exports != nil {
		dir, err := opts.Exports.EnsureDir(correspondenceKey)
		if err != nil {
			return nil, domain.IOError(err, "prepare correspondence export")
		}
		tester.exportDir = dir
	}

	return tester, nil
}

func (t *Tester) BeforeTestEpoch(context.Context) {
	t.mu.Lock()
	t.records = nil
	t.mu.Unlock()
}

func (t *Tester) TestStep(ctx context.Context, _ int, batch Batch) (Prediction, error) {
	if mode, ok := domain.ExecutionModeFrom(ctx); ok && mode.GradEnabled {
		return nil, fmt.Errorf("inference requires gradients disabled")
	}

	prediction := make(Prediction, len(batch))
	for i, sample := range batch {
		points := make([]domain.Point3, len(sample.Pairs))
		for j, pair := range sample.Pairs {
			points[j] = t.model.Apply(pair.Source)
		}
		prediction[i] = points
	}

	return prediction, nil
}

func (t *Tester) EvalStep(_ context.Context, _ int, batch Batch, prediction Prediction) (domain.Result, error) {
	if len(prediction) != len(batch) {
		return nil, fmt.Errorf("prediction covers %d samples, batch has %d", len(prediction), len(batch))
	}

	var squared float64
	var inliers, total int
	for i, sample := range batch {
		if len(prediction[i]) != len(sample.Pairs) {
			return nil, fmt.Errorf("sample %s: %d predictions for %d pairs", sample.Name, len(prediction[i]), len(sample.Pairs))
		}
		targets := make([]domain.Point3, len(sample.Pairs))
		for j, pair := range sample.Pairs {
			residual := prediction[i][j].Sub(pair.Target).Norm()
			squared += residual * residual
			if residual < t.threshold {
				inliers++
			}
			targets[j] = pair.Target
		}
		total += len(sample.Pairs)

		if err := t.export(sample.Name, prediction[i], targets); err != nil {
			return nil, err
		}
	}

	if total == 0 {
		return domain.Result{}, nil
	}

	return domain.Result{
		MetricRMSE:        math.Sqrt(squared / float64(total)),
		MetricInlierRatio: float64(inliers) / float64(total),
	}, nil
}

func (t *Tester) export(name string, predicted, targets []domain.Point3) error {
	if t.exportDir == "" {
		return nil
	}

	if _, err := file.WriteCorrespondences(filepath.Join(t.exportDir, name), predicted, targets); err != nil {
		return fmt.Errorf("export correspondences of %s: %w", name, err)
	}

	return nil
}

func (t *Tester) AfterTestStep(_ context.Context, iteration int, batch Batch, _ Prediction, result domain.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.records = append(t.records, ItemResult{
		Iteration: iteration,
		Names:     sampleNames(batch),
		Metrics:   result,
	})
}

func (t *Tester) LogString(_ int, batch Batch, _ Prediction, result domain.Result) string {
	return strings.Join(sampleNames(batch), ",") + " " + result.String()
}

// Records returns the per-item results of the last epoch.
func (t *Tester) Records() []ItemResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]ItemResult, len(t.records))
	copy(out, t.records)
	return out
}

func sampleNames(batch Batch) []string {
	names := make([]string, len(batch))
	for i, sample := range batch {
		names[i] = sample.Name
	}
	return names
}
