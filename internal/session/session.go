// Package session holds the state of the setlist currently being viewed and
// moves through it one line at a time.
package session

import (
	"errors"
	"io/fs"
	"sync"

	"github.com/rs/zerolog"

	"github.com/TimelordUK/setlist/internal/index"
	"github.com/TimelordUK/setlist/internal/source"
)

// Unopened is the line count of a session whose file could not be opened
const Unopened = -1

// ErrNotOpen is returned by navigation on a session without a readable file
var ErrNotOpen = errors.New("no setlist open")

// Session is the live state of one setlist: its path, line index and the
// first line of the displayed window.
type Session struct {
	mu       sync.Mutex
	path     string
	provider source.WindowProvider
	pointer  int
	logger   zerolog.Logger
}

// Open indexes path and starts a session at line 0.
//
// When the file cannot be opened the session is still returned, with
// LineCount() == Unopened, together with the error. A file longer than
// maxLines opens normally and the error matches index.ErrTooManyLines.
func Open(fsys fs.FS, path string, maxLines int, logger zerolog.Logger) (*Session, error) {
	s := &Session{path: path, logger: logger.With().Str("file", path).Logger()}

	src, err := source.NewFileSource(fsys, path, maxLines)
	if src == nil {
		s.logger.Warn().Err(err).Msg("setlist not opened")
		return s, err
	}
	s.provider = src

	evt := s.logger.Info()
	if errors.Is(err, index.ErrTooManyLines) {
		evt = s.logger.Warn().Err(err)
	}
	evt.Int("lines", src.LineCount()).Int("reachable", src.Reachable()).Msg("setlist indexed")

	return s, err
}

// New starts a session over an existing provider
func New(path string, provider source.WindowProvider, logger zerolog.Logger) *Session {
	return &Session{path: path, provider: provider, logger: logger}
}

// Path returns the setlist path
func (s *Session) Path() string {
	return s.path
}

// LineCount returns the number of line feeds, or Unopened
func (s *Session) LineCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provider == nil {
		return Unopened
	}
	return s.provider.LineCount()
}

// Total returns the number of lines navigation may visit, or Unopened
func (s *Session) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provider == nil {
		return Unopened
	}
	return s.provider.Reachable()
}

// Pointer returns the first line of the current window
func (s *Session) Pointer() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pointer
}

// Current reads the window at the current pointer
func (s *Session) Current() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provider == nil {
		return "", ErrNotOpen
	}
	return s.read()
}

// Forward moves one line down when the window has not reached the end.
// moved is false and nothing is read when the pointer is already at the end.
func (s *Session) Forward() (text string, moved bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provider == nil {
		return "", false, ErrNotOpen
	}
	if s.pointer >= s.provider.Reachable()-2 {
		return "", false, nil
	}

	s.pointer++
	text, err = s.read()
	return text, true, err
}

// Backward moves one line up unless already at the first line
func (s *Session) Backward() (text string, moved bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provider == nil {
		return "", false, ErrNotOpen
	}
	if s.pointer == 0 {
		return "", false, nil
	}

	s.pointer--
	text, err = s.read()
	return text, true, err
}

// Rewind jumps back to line 0 and reads the first window
func (s *Session) Rewind() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provider == nil {
		return "", ErrNotOpen
	}
	s.pointer = 0
	return s.read()
}

// AtEnd reports whether Forward would not move
func (s *Session) AtEnd() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.provider == nil {
		return true
	}
	return s.pointer >= s.provider.Reachable()-2
}

// read must be called with mu held
func (s *Session) read() (string, error) {
	text, err := s.provider.Window(s.pointer)
	if err != nil {
		s.logger.Error().Err(err).Int("line", s.pointer).Msg("window read failed")
		return "", err
	}
	s.logger.Debug().Int("line", s.pointer).Int("bytes", len(text)).Msg("window read")
	return text, nil
}
