package logging

import (
	"log/slog"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	time    lipgloss.Style
	sep     lipgloss.Style
	attrKey lipgloss.Style
	debug   lipgloss.Style
	info    lipgloss.Style
	warn    lipgloss.Style
	error   lipgloss.Style
}

func newStyles() styles {
	return styles{
		time:    lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
		sep:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		attrKey: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		debug:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		info:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		warn:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214")),
		error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}

func (s styles) level(level slog.Level) lipgloss.Style {
	switch {
	case level >= slog.LevelError:
		return s.error
	case level >= slog.LevelWarn:
		return s.warn
	case level >= slog.LevelInfo:
		return s.info
	default:
		return s.debug
	}
}
