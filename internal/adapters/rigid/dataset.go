package rigid

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bnema/vision3d-engine/internal/adapters/storage/file"
	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/bnema/vision3d-engine/internal/ports"
)

const sampleExt = ".txt"

type Pair struct {
	Source domain.Point3
	Target domain.Point3
}

// Sample is one correspondence file.
type Sample struct {
	Name  string
	Pairs []Pair
}

// Dataset reads every "*.txt" file of a directory, in name order. Each
// non-empty line that does not start with '#' holds "sx sy sz tx ty tz".
type Dataset struct {
	files []string
}

var _ ports.Dataset[Sample] = (*Dataset)(nil)

func NewDataset(dir string) (*Dataset, error) {
	if err := requireDir(dir); err != nil {
		return nil, err
	}

	files, err := filepath.Glob(filepath.Join(dir, "*"+sampleExt))
	if err != nil {
		return nil, domain.IOError(err, "list dataset %q", dir)
	}

	return &Dataset{files: files}, nil
}

func (d *Dataset) Len() int {
	return len(d.files)
}

func (d *Dataset) Item(ctx context.Context, index int) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}
	if index < 0 || index >= len(d.files) {
		return Sample{}, fmt.Errorf("index %d out of range [0, %d)", index, len(d.files))
	}

	path := d.files[index]
	lines, err := file.ReadLines(path)
	if err != nil {
		return Sample{}, domain.IOError(err, "read sample %q", path)
	}

	sample := Sample{Name: strings.TrimSuffix(filepath.Base(path), sampleExt)}
	for n, line := range lines {
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		pair, err := parsePair(line)
		if err != nil {
			return Sample{}, fmt.Errorf("parse %s line %d: %w", path, n+1, err)
		}
		sample.Pairs = append(sample.Pairs, pair)
	}

	return sample, nil
}

func parsePair(line string) (Pair, error) {
	fields := strings.Fields(line)
	if len(fields) != 6 {
		return Pair{}, fmt.Errorf("want 6 values, got %d", len(fields))
	}

	var values [6]float64
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Pair{}, err
		}
		values[i] = v
	}

	return Pair{
		Source: domain.Point3{values[0], values[1], values[2]},
		Target: domain.Point3{values[3], values[4], values[5]},
	}, nil
}

func requireDir(dir string) error {
	if dir == "" {
		return domain.ConfigurationError("dataset directory is empty")
	}

	info, err := os.Stat(dir)
	if err != nil {
		return domain.ConfigurationError("dataset directory %q: %v", dir, err)
	}
	if !info.IsDir() {
		return domain.ConfigurationError("dataset path %q is not a directory", dir)
	}

	return nil
}
