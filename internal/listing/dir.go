// Package listing enumerates the setlist card.
package listing

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/TimelordUK/setlist/internal/storage"
)

// DefaultPattern matches the plain-text setlists at the card root
const DefaultPattern = "*.txt"

var (
	ErrDirectoryOpen = errors.New("failed to open directory")
	ErrNotADirectory = errors.New("not a directory")
)

// DirectoryError reports why a directory could not be listed
type DirectoryError struct {
	Path string
	Err  error // ErrDirectoryOpen or ErrNotADirectory
	Root error // underlying cause, if any
}

func (e *DirectoryError) Error() string {
	if e.Root != nil {
		return fmt.Sprintf("%s %s: %v", e.Err, e.Path, e.Root)
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Path)
}

func (e *DirectoryError) Unwrap() []error {
	if e.Root != nil {
		return []error{e.Err, e.Root}
	}
	return []error{e.Err}
}

// ListDirectory returns the visible entries of dir, one per line. Names
// starting with "." are skipped. With depth > 0 visible subdirectories are
// descended into up to depth levels and their entries are prefixed with the
// subdirectory path.
func ListDirectory(fsys fs.FS, dir string, depth int) (string, error) {
	dir = storage.Clean(dir)

	entries, err := readDir(fsys, dir)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if err := list(fsys, dir, "", entries, depth, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func list(fsys fs.FS, dir, prefix string, entries []fs.DirEntry, depth int, b *strings.Builder) error {
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		b.WriteString(prefix + name + "\n")

		if depth > 0 && e.IsDir() {
			sub := path.Join(dir, name)
			children, err := readDir(fsys, sub)
			if err != nil {
				return err
			}
			if err := list(fsys, sub, prefix+name+"/", children, depth-1, b); err != nil {
				return err
			}
		}
	}
	return nil
}

// Setlists returns the visible regular files in dir whose names match the
// doublestar pattern. An empty pattern selects DefaultPattern.
func Setlists(fsys fs.FS, dir, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid setlist pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	dir = storage.Clean(dir)
	entries, err := readDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") || !e.Type().IsRegular() {
			continue
		}
		if ok, _ := doublestar.Match(pattern, name); ok {
			names = append(names, path.Join(dir, name))
		}
	}
	slices.Sort(names)
	return names, nil
}

// readDir opens dir, checks it is a directory and reads every entry
func readDir(fsys fs.FS, dir string) ([]fs.DirEntry, error) {
	f, err := fsys.Open(dir)
	if err != nil {
		return nil, &DirectoryError{Path: dir, Err: ErrDirectoryOpen, Root: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &DirectoryError{Path: dir, Err: ErrDirectoryOpen, Root: err}
	}
	if !info.IsDir() {
		return nil, &DirectoryError{Path: dir, Err: ErrNotADirectory}
	}

	rd, ok := f.(fs.ReadDirFile)
	if !ok {
		return nil, &DirectoryError{Path: dir, Err: ErrNotADirectory}
	}

	entries, err := rd.ReadDir(-1)
	if err != nil {
		return nil, &DirectoryError{Path: dir, Err: ErrDirectoryOpen, Root: err}
	}
	slices.SortFunc(entries, func(a, b fs.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return entries, nil
}
