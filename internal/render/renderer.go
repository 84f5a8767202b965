package render

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/TimelordUK/setlist/internal/config"
	"github.com/TimelordUK/setlist/internal/source"
)

// BodyRows is the height of the painted region: a full window, the blank
// line before the end marker, and the marker itself.
const BodyRows = source.WindowLines + 2

// Painter clears the text region of the display and draws text into it
type Painter interface {
	PaintLines(text, fg, bg string) string
}

// Panel paints setlist windows with lipgloss
type Panel struct {
	width  int
	accent lipgloss.Color
	errCol lipgloss.Color
}

// NewPanel creates a panel from the display config
func NewPanel(cfg config.DisplayConfig) *Panel {
	return &Panel{
		width:  cfg.Width,
		accent: lipgloss.Color(cfg.Accent),
		errCol: lipgloss.Color(cfg.Error),
	}
}

// Width returns the panel width in cells
func (p *Panel) Width() int {
	return p.width
}

// PaintLines renders text over a cleared region of BodyRows lines. A
// trailing end marker is drawn in the accent colour.
func (p *Panel) PaintLines(text, fg, bg string) string {
	base := lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg)).
		Width(p.width).
		MaxWidth(p.width)

	body, atEnd := strings.CutSuffix(text, source.EndMarker)
	body = strings.TrimSuffix(body, "\n")

	var rows []string
	if body != "" || !atEnd {
		rows = strings.Split(body, "\n")
	}
	if atEnd {
		if len(rows) > BodyRows-1 {
			rows = rows[:BodyRows-1]
		}
		if len(rows) < BodyRows-1 {
			rows = append(rows, "")
		}
		rows = append(rows, strings.TrimPrefix(source.EndMarker, "\n"))
	}
	if len(rows) > BodyRows {
		rows = rows[:BodyRows]
	}

	out := make([]string, BodyRows)
	for i := range out {
		line := ""
		if i < len(rows) {
			line = fit(strings.TrimSuffix(rows[i], "\r"), p.width)
		}
		style := base
		if atEnd && i == len(rows)-1 {
			style = style.Foreground(p.accent).Bold(true)
		}
		out[i] = style.Render(line)
	}
	return strings.Join(out, "\n")
}

// PaintError renders msg in the error colour instead of as setlist content
func (p *Panel) PaintError(msg, bg string) string {
	style := lipgloss.NewStyle().
		Foreground(p.errCol).
		Background(lipgloss.Color(bg)).
		Width(p.width).
		Height(BodyRows).
		MaxWidth(p.width).
		MaxHeight(BodyRows)
	return style.Render(msg)
}

// fit cuts line to at most width bytes without splitting a UTF-8 sequence
func fit(line string, width int) string {
	if len(line) <= width {
		return line
	}
	cut := width
	for cut > 0 && !utf8.RuneStart(line[cut]) {
		cut--
	}
	return line[:cut]
}

// IsEnd reports whether text is the final window of a setlist
func IsEnd(text string) bool {
	return strings.HasSuffix(text, source.EndMarker)
}
