package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/setlist/internal/config"
	"github.com/TimelordUK/setlist/internal/render"
)

// Screen lays out the pedal display: a clock header, the painted body and a
// footer with the labels of the two buttons.
// It knows nothing about files or sessions.
type Screen struct {
	panel *render.Panel
	cfg   config.DisplayConfig

	headerStyle lipgloss.Style
	labelStyle  lipgloss.Style
	toastStyle  lipgloss.Style
	frameStyle  lipgloss.Style
}

// NewScreen creates a screen from the display config
func NewScreen(cfg config.DisplayConfig) *Screen {
	return &Screen{
		panel: render.NewPanel(cfg),
		cfg:   cfg,
		headerStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Foreground)).
			Bold(true).
			Width(cfg.Width).
			Align(lipgloss.Center),
		labelStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(cfg.Accent)),
		toastStyle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(cfg.Error)).
			Width(cfg.Width).
			Align(lipgloss.Center),
		frameStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")),
	}
}

// Panel returns the body painter
func (s *Screen) Panel() *render.Panel {
	return s.panel
}

// Body paints setlist text in the configured colours
func (s *Screen) Body(text string) string {
	return s.panel.PaintLines(text, s.cfg.Foreground, s.cfg.Background)
}

// Error paints an error message in place of setlist text
func (s *Screen) Error(msg string) string {
	return s.panel.PaintError(msg, s.cfg.Background)
}

// Centered paints lines centred in the body region
func (s *Screen) Centered(lines ...string) string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.cfg.Foreground)).
		Width(s.cfg.Width).
		Height(render.BodyRows).
		Align(lipgloss.Center, lipgloss.Center)
	return style.Render(strings.Join(lines, "\n"))
}

// Footer renders the left and right button labels at opposite edges
func (s *Screen) Footer(left, right string) string {
	l := s.labelStyle.Render(left)
	r := s.labelStyle.Render(right)
	gap := s.cfg.Width - lipgloss.Width(l) - lipgloss.Width(r)
	if gap < 1 {
		gap = 1
	}
	return l + strings.Repeat(" ", gap) + r
}

// Frame stacks header, toast, body and footer inside a border
func (s *Screen) Frame(header, toast, body, footer string) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		s.headerStyle.Render(header),
		s.toastStyle.Render(toast),
		body,
		footer,
	)
	return s.frameStyle.Render(content)
}
