package source

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/TimelordUK/setlist/internal/index"
	"github.com/TimelordUK/setlist/internal/storage"
)

var (
	// ErrFileOpen is the same condition the indexer reports
	ErrFileOpen = index.ErrFileOpen

	// ErrIndexOutOfRange reports a start line outside the indexed range
	ErrIndexOutOfRange = errors.New("line index out of range")
)

// RangeError describes a rejected start line
type RangeError struct {
	Line      int
	Total     int
	Reachable int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: line %d (total %d, indexed %d)", ErrIndexOutOfRange, e.Line, e.Total, e.Reachable)
}

func (e *RangeError) Unwrap() error {
	return ErrIndexOutOfRange
}

// ReadWindow returns WindowLines lines of path starting at startLine, using
// idx to seek straight to the first byte.
//
// When fewer than WindowLines lines remain (startLine >= totalLines-3, which
// always holds for files shorter than three lines) the rest of the visible
// content is returned with EndMarker appended.
func ReadWindow(fsys fs.FS, path string, idx *index.LineIndex, startLine, totalLines int) (string, error) {
	if err := checkRange(idx, startLine, totalLines); err != nil {
		return "", err
	}

	start, _ := idx.Offset(startLine)

	var end int64
	tail := startLine >= totalLines-WindowLines
	if tail {
		end = idx.End()
	} else {
		end, _ = idx.Offset(startLine + WindowLines)
	}

	f, err := storage.OpenSeekable(fsys, path)
	if err != nil {
		return "", &index.FileOpenError{Path: path, Err: err}
	}
	defer f.Close()

	if _, err := f.Seek(start, io.SeekStart); err != nil {
		return "", fmt.Errorf("seek %s to line %d: %w", path, startLine, err)
	}

	var b strings.Builder
	if n := end - start; n > 0 {
		b.Grow(int(n) + len(EndMarker))
		if _, err := io.CopyN(&b, f, n); err != nil && !(tail && errors.Is(err, io.EOF)) {
			return "", fmt.Errorf("read %s at line %d: %w", path, startLine, err)
		}
	}

	if tail {
		b.WriteString(EndMarker)
	}
	return b.String(), nil
}

// checkRange rejects start lines the table cannot answer for. Line 0 is
// always valid so empty and single-line files still display.
func checkRange(idx *index.LineIndex, startLine, totalLines int) error {
	reachable := idx.Reachable()
	if totalLines > reachable || totalLines < 0 {
		return &RangeError{Line: startLine, Total: totalLines, Reachable: reachable}
	}
	if startLine == 0 {
		return nil
	}
	if startLine < 0 || startLine >= totalLines {
		return &RangeError{Line: startLine, Total: totalLines, Reachable: reachable}
	}
	return nil
}
