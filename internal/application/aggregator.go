package application

import "github.com/bnema/vision3d-engine/internal/domain"

type Aggregator interface {
	Add(result domain.Result)
	Summary() domain.Summary
}

// MeanAggregator keeps a running mean per metric. Metrics missing from some
// results are averaged over the results that report them.
type MeanAggregator struct {
	sums   map[string]float64
	counts map[string]int
}

func NewMeanAggregator() *MeanAggregator {
	return &MeanAggregator{
		sums:   map[string]float64{},
		counts: map[string]int{},
	}
}

func (a *MeanAggregator) Add(result domain.Result) {
	for key, value := range result {
		a.sums[key] += value
		a.counts[key]++
	}
}

func (a *MeanAggregator) Summary() domain.Summary {
	summary := make(domain.Summary, len(a.sums))
	for key, sum := range a.sums {
		summary[key] = sum / float64(a.counts[key])
	}

	return summary
}

// SumAggregator totals every metric.
type SumAggregator struct {
	sums map[string]float64
}

func NewSumAggregator() *SumAggregator {
	return &SumAggregator{sums: map[string]float64{}}
}

func (a *SumAggregator) Add(result domain.Result) {
	for key, value := range result {
		a.sums[key] += value
	}
}

func (a *SumAggregator) Summary() domain.Summary {
	summary := make(domain.Summary, len(a.sums))
	for key, sum := range a.sums {
		summary[key] = sum
	}

	return summary
}
