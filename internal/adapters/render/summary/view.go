package summary

import (
	"fmt"
	"math"
	"strings"

	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Title      string
	Checkpoint string
	Items      int
	Failed     error
}

const barWidth = 24

func renderView(summary domain.Summary, opts RenderOptions, s styles) string {
	title := opts.Title
	if title == "" {
		title = "Test Summary"
	}

	lines := []string{
		s.title.Render(title),
		s.header.Render(fmt.Sprintf("checkpoint: %s", valueOr(opts.Checkpoint, "n/a"))),
		s.header.Render(fmt.Sprintf("items: %d", opts.Items)),
	}

	if opts.Failed != nil {
		lines = append(lines, s.section.Render(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")).Render("failed: "+opts.Failed.Error())))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	if len(summary) == 0 {
		lines = append(lines, s.empty.Render("No metrics reported."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	keys := summary.Keys()
	keyWidth := 0
	for _, key := range keys {
		keyWidth = max(keyWidth, len(key))
	}

	metrics := make([]string, 0, len(keys))
	for _, key := range keys {
		metrics = append(metrics, metricLine(key, summary[key], keyWidth, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, metrics...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func metricLine(key string, value float64, keyWidth int, s styles) string {
	parts := []string{
		s.metricKey.Render(fmt.Sprintf("%-*s", keyWidth, key)),
		" ",
		s.metricVal.Render(fmt.Sprintf("%.3f", value)),
	}

	if isFraction(key, value) {
		parts = append(parts, " ", renderProgressBar(value, barWidth, s))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// isFraction reports metrics shown with a bar: ratios and rates within [0, 1].
func isFraction(key string, value float64) bool {
	if value < 0 || value > 1 || math.IsNaN(value) {
		return false
	}

	return strings.HasSuffix(key, "ratio") || strings.HasSuffix(key, "rate") || strings.HasSuffix(key, "recall")
}

func renderProgressBar(fraction float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * fraction))
	filled = min(max(filled, 0), width)

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func valueOr(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}
