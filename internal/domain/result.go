package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Result holds the metrics computed for one test item.
type Result map[string]float64

// Summary holds the aggregate of every Result in an epoch.
type Summary map[string]float64

func (r Result) String() string {
	return formatMetrics(r)
}

func (s Summary) String() string {
	return formatMetrics(s)
}

func (s Summary) Keys() []string {
	return sortedKeys(s)
}

func formatMetrics(metrics map[string]float64) string {
	keys := sortedKeys(metrics)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %.3f", key, metrics[key]))
	}

	return strings.Join(parts, ", ")
}

func sortedKeys(metrics map[string]float64) []string {
	keys := make([]string, 0, len(metrics))
	for key := range metrics {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	return keys
}
