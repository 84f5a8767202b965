package ui

import (
	"errors"
	"fmt"
	"io/fs"
	"path"

	"github.com/rs/zerolog"

	"github.com/TimelordUK/setlist/internal/index"
	"github.com/TimelordUK/setlist/internal/render"
	"github.com/TimelordUK/setlist/internal/session"
	"github.com/TimelordUK/setlist/internal/view"
)

// Pane is the scroll view of one open setlist
type Pane struct {
	session *session.Session

	// Last window read, or the error that replaced it
	text string
	err  error

	// Set when the file was longer than the line ceiling
	warning string

	filename string
}

// OpenPane starts a viewing session for filePath. It never fails: an
// unreadable file gives a pane that shows the error.
func OpenPane(fsys fs.FS, filePath string, maxLines int, logger zerolog.Logger) *Pane {
	p := &Pane{filename: path.Base(filePath)}

	s, err := session.Open(fsys, filePath, maxLines, logger)
	p.session = s

	var tooMany *index.TooManyLinesError
	switch {
	case errors.As(err, &tooMany):
		p.warning = fmt.Sprintf("only the first %d of %d lines are shown", tooMany.Max, tooMany.Lines)
	case err != nil:
		p.err = err
		return p
	}

	p.text, p.err = s.Current()
	return p
}

// Forward moves the window down one line
func (p *Pane) Forward() {
	p.apply(p.session.Forward())
}

// Backward moves the window up one line
func (p *Pane) Backward() {
	p.apply(p.session.Backward())
}

// Rewind jumps back to the first line
func (p *Pane) Rewind() {
	text, err := p.session.Rewind()
	p.apply(text, true, err)
}

func (p *Pane) apply(text string, moved bool, err error) {
	if err != nil {
		// Keep the open failure rather than the generic not-open error
		if p.err == nil || !errors.Is(err, session.ErrNotOpen) {
			p.err = err
		}
		return
	}
	if moved {
		p.text = text
		p.err = nil
	}
}

// Render paints the current window, or the error in place of it
func (p *Pane) Render(s *view.Screen) string {
	if p.err != nil {
		return s.Error(p.err.Error())
	}
	return s.Body(p.text)
}

// AtEnd reports whether the end marker is showing
func (p *Pane) AtEnd() bool {
	return p.err == nil && render.IsEnd(p.text)
}

// Err returns the error shown instead of content, if any
func (p *Pane) Err() error {
	return p.err
}

// Text returns the last window read
func (p *Pane) Text() string {
	return p.text
}

// Warning returns the truncation notice, if any
func (p *Pane) Warning() string {
	return p.warning
}

// Filename returns the display filename
func (p *Pane) Filename() string {
	return p.filename
}

// Session returns the pane's viewing session
func (p *Pane) Session() *session.Session {
	return p.session
}

// Status returns the position summary for the status bar
func (p *Pane) Status() string {
	total := p.session.Total()
	if total == session.Unopened {
		return fmt.Sprintf(" %s  not opened", p.filename)
	}
	return fmt.Sprintf(" %s  L%d/%d", p.filename, p.session.Pointer()+1, max(total, 1))
}
