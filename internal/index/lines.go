package index

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/TimelordUK/setlist/internal/storage"
)

// DefaultMaxLines is the number of lines the viewer indexes when no ceiling
// is configured.
const DefaultMaxLines = 100

const chunkSize = 4 * 1024

var (
	// ErrFileOpen reports that the setlist could not be opened for reading
	ErrFileOpen = errors.New("failed to open file for reading")

	// ErrTooManyLines reports that the file has more lines than the table
	// can hold. The index is still usable up to the ceiling.
	ErrTooManyLines = errors.New("too many lines")
)

// FileOpenError carries the path and cause of an open failure
type FileOpenError struct {
	Path string
	Err  error
}

func (e *FileOpenError) Error() string {
	return fmt.Sprintf("%s %s: %v", ErrFileOpen, e.Path, e.Err)
}

func (e *FileOpenError) Unwrap() []error {
	return []error{ErrFileOpen, e.Err}
}

// TooManyLinesError is returned alongside a truncated index
type TooManyLinesError struct {
	Path  string
	Lines int
	Max   int
}

func (e *TooManyLinesError) Error() string {
	return fmt.Sprintf("%s: %d lines, only the first %d are indexed", e.Path, e.Lines, e.Max)
}

func (e *TooManyLinesError) Is(target error) bool {
	return target == ErrTooManyLines
}

// LineIndex stores byte offsets for each line in a file
type LineIndex struct {
	offsets   []int64 // offsets[i] is where line i starts; offsets[0] == 0
	lineCount int     // number of '\n' bytes seen, including any past the ceiling
	maxLines  int
	size      int64
}

// Build scans path once and records where every line starts.
//
// Recording stops at maxLines (DefaultMaxLines when maxLines <= 0) but the
// scan runs to EOF so LineCount stays exact. When the file has more lines
// than the ceiling, Build returns the truncated index together with an error
// matching ErrTooManyLines.
func Build(fsys fs.FS, path string, maxLines int) (*LineIndex, error) {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}

	f, err := storage.OpenSeekable(fsys, path)
	if err != nil {
		return nil, &FileOpenError{Path: path, Err: err}
	}
	defer f.Close()

	idx, err := scan(f, maxLines)
	if err != nil {
		return nil, fmt.Errorf("index %s: %w", path, err)
	}

	if idx.Truncated() {
		return idx, &TooManyLinesError{Path: path, Lines: idx.lineCount, Max: maxLines}
	}
	return idx, nil
}

// scan reads r to EOF. Slot 0 is never written; slot n receives the offset
// just past the n-th line feed.
func scan(r io.Reader, maxLines int) (*LineIndex, error) {
	idx := &LineIndex{
		offsets:  make([]int64, 1, min(maxLines, 64)+1),
		maxLines: maxLines,
	}

	buf := make([]byte, chunkSize)
	var pos int64
	for {
		n, err := r.Read(buf)
		chunk := buf[:n]
		offset := 0
		for {
			i := bytes.IndexByte(chunk[offset:], '\n')
			if i == -1 {
				break
			}
			idx.lineCount++
			if idx.lineCount <= maxLines {
				idx.offsets = append(idx.offsets, pos+int64(offset+i)+1)
			}
			offset += i + 1
		}
		pos += int64(n)

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}

	idx.size = pos
	return idx, nil
}

// LineCount returns the number of line feeds in the file
func (idx *LineIndex) LineCount() int {
	return idx.lineCount
}

// Reachable returns the number of lines navigation may visit
func (idx *LineIndex) Reachable() int {
	return len(idx.offsets) - 1
}

// Truncated reports whether lines past the ceiling were dropped
func (idx *LineIndex) Truncated() bool {
	return idx.lineCount > idx.maxLines
}

// MaxLines returns the ceiling the index was built with
func (idx *LineIndex) MaxLines() int {
	return idx.maxLines
}

// Size returns the number of bytes scanned
func (idx *LineIndex) Size() int64 {
	return idx.size
}

// Offset returns the byte offset of a line. ok is false outside the
// recorded range.
func (idx *LineIndex) Offset(lineNum int) (offset int64, ok bool) {
	if lineNum < 0 || lineNum >= len(idx.offsets) {
		return 0, false
	}
	return idx.offsets[lineNum], true
}

// End returns the offset where visible content stops: EOF for a complete
// index, or the end of the last indexed line for a truncated one.
func (idx *LineIndex) End() int64 {
	if idx.Truncated() {
		return idx.offsets[len(idx.offsets)-1]
	}
	return idx.size
}

// Offsets returns a copy of the offset table
func (idx *LineIndex) Offsets() []int64 {
	out := make([]int64, len(idx.offsets))
	copy(out, idx.offsets)
	return out
}
