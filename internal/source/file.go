package source

import (
	"io/fs"

	"github.com/TimelordUK/setlist/internal/index"
)

// FileSource provides windows from a single setlist file
type FileSource struct {
	fsys      fs.FS
	lineIndex *index.LineIndex
	path      string
}

// NewFileSource indexes path and returns a source for it. A file longer than
// maxLines still yields a usable source; the returned error then matches
// index.ErrTooManyLines.
func NewFileSource(fsys fs.FS, path string, maxLines int) (*FileSource, error) {
	lineIndex, err := index.Build(fsys, path, maxLines)
	if lineIndex == nil {
		return nil, err
	}

	return &FileSource{
		fsys:      fsys,
		lineIndex: lineIndex,
		path:      path,
	}, err
}

// LineCount returns the number of line feeds in the file
func (s *FileSource) LineCount() int {
	return s.lineIndex.LineCount()
}

// Reachable returns how many lines navigation may visit
func (s *FileSource) Reachable() int {
	return s.lineIndex.Reachable()
}

// Window returns the window starting at start
func (s *FileSource) Window(start int) (string, error) {
	return ReadWindow(s.fsys, s.path, s.lineIndex, start, s.lineIndex.Reachable())
}

// Index returns the line index backing the source
func (s *FileSource) Index() *index.LineIndex {
	return s.lineIndex
}

// Path returns the file path
func (s *FileSource) Path() string {
	return s.path
}
