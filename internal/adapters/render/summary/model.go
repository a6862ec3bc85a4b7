package summary

import (
	"errors"
	"io"

	"github.com/bnema/vision3d-engine/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
)

var ErrUnexpectedSummaryModel = errors.New("summary program finished with an unexpected model")

// report is everything one summary panel needs.
type report struct {
	summary domain.Summary
	opts    RenderOptions
}

type summaryComputedMsg struct {
	text string
}

// panel lays the report out once and quits; it never reads input.
type panel struct {
	report report
	styles styles
	text   string
	done   bool
}

func newPanel(r report) panel {
	return panel{report: r, styles: newStyles()}
}

func (p panel) Init() tea.Cmd {
	r, s := p.report, p.styles
	return func() tea.Msg {
		return summaryComputedMsg{text: renderView(r.summary, r.opts, s)}
	}
}

func (p panel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	computed, ok := msg.(summaryComputedMsg)
	if !ok {
		return p, nil
	}

	p.text = computed.text
	p.done = true
	return p, tea.Quit
}

func (p panel) View() string {
	if !p.done {
		return ""
	}
	return p.text
}

// Render lays out a finished epoch summary, or the failure in opts.Failed.
func Render(summary domain.Summary, opts RenderOptions) (string, error) {
	program := tea.NewProgram(
		newPanel(report{summary: summary, opts: opts}),
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	final, err := program.Run()
	if err != nil {
		return "", err
	}

	p, ok := final.(panel)
	if !ok || !p.done {
		return "", ErrUnexpectedSummaryModel
	}

	return p.View(), nil
}
