package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type testProgressMsg struct {
	done  int
	total int
}

type testRunDoneMsg struct {
	err error
}

type testProgressModel struct {
	spinner spinner.Model
	label   string
	run     tea.Cmd
	done    int
	total   int
	err     error
	stopped bool
}

func newTestProgressModel(label string, run tea.Cmd) testProgressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return testProgressModel{
		spinner: s,
		label:   label,
		run:     run,
	}
}

func (m testProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m testProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case testProgressMsg:
		m.done = msg.done
		m.total = msg.total
		return m, nil
	case testRunDoneMsg:
		m.stopped = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m testProgressModel) View() string {
	if m.stopped {
		return ""
	}
	if m.total > 0 {
		return fmt.Sprintf("%s %s %d/%d", m.spinner.View(), m.label, m.done, m.total)
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runTestProgress(ctx context.Context, output io.Writer, run func(context.Context, func(done, total int)) error) error {
	var p *tea.Program
	progress := func(done, total int) {
		p.Send(testProgressMsg{done: done, total: total})
	}
	runCmd := func() tea.Msg {
		return testRunDoneMsg{err: run(ctx, progress)}
	}

	p = tea.NewProgram(
		newTestProgressModel("Running test epoch...", runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(testProgressModel)
	if !ok {
		return fmt.Errorf("unexpected final progress model type %T", finalModel)
	}

	return result.err
}
