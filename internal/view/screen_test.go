package view

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/TimelordUK/setlist/internal/config"
	"github.com/TimelordUK/setlist/internal/render"
	"github.com/TimelordUK/setlist/internal/source"
)

func newScreen() *Screen {
	cfg := config.DefaultConfig().Display
	cfg.Width = 30
	return NewScreen(cfg)
}

func TestFooter_LabelsAtEdges(t *testing.T) {
	s := newScreen()

	got := s.Footer("YES", "NO")
	assert.Equal(t, 30, lipgloss.Width(got))
	assert.True(t, strings.HasPrefix(got, "YES"))
	assert.True(t, strings.HasSuffix(got, "NO"))
}

func TestFooter_TooWide(t *testing.T) {
	s := newScreen()

	got := s.Footer(strings.Repeat("L", 20), strings.Repeat("R", 20))
	assert.Contains(t, got, "L R")
}

func TestFrame(t *testing.T) {
	s := newScreen()

	got := s.Frame("9:05 pm", "", s.Body("A\nBB\nCCC\n"), s.Footer("PREV", "NEXT"))

	// border + header + toast + body + footer + border
	assert.Equal(t, 2+1+1+render.BodyRows+1, lipgloss.Height(got))
	assert.Contains(t, got, "9:05 pm")
	assert.Contains(t, got, "CCC")
	assert.Contains(t, got, "NEXT")
}

func TestBody_EndMarker(t *testing.T) {
	s := newScreen()

	got := s.Body("x\n" + source.EndMarker)
	assert.Contains(t, got, "END OF SETLIST")
}

func TestCentered(t *testing.T) {
	s := newScreen()

	got := s.Centered("The time is", "9:05 pm")
	assert.Equal(t, render.BodyRows, lipgloss.Height(got))
	assert.Contains(t, got, "The time is")
}

func TestError(t *testing.T) {
	s := newScreen()
	assert.Contains(t, s.Error("failed to open directory"), "failed to open directory")
}
