// Package storage provides the removable-storage filesystem the viewer reads
// setlists from. Everything above this package talks to an io/fs.FS, so tests
// can swap the card for an in-memory filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/exp/mmap"
)

// ErrNotSeekable is returned when an opened file cannot be positioned
var ErrNotSeekable = errors.New("file does not support seeking")

// Card mounts a host directory as the storage card. Regular files are served
// from read-only memory maps.
type Card struct {
	root string
}

// Mount returns a Card rooted at dir
func Mount(dir string) (*Card, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("mount %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("mount %s: not a directory", dir)
	}
	return &Card{root: dir}, nil
}

// Attach returns a Card rooted at dir without checking it. Until dir exists
// every Open fails with fs.ErrNotExist, as with a card that is not inserted.
func Attach(dir string) *Card {
	return &Card{root: dir}
}

// Root returns the host directory backing the card
func (c *Card) Root() string {
	return c.root
}

// UsedBytes sums the size of every regular file on the card
func (c *Card) UsedBytes() (int64, error) {
	var used int64
	err := fs.WalkDir(c, ".", func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			info, err := d.Info()
			if err != nil {
				return err
			}
			used += info.Size()
		}
		return nil
	})
	return used, err
}

// Open implements fs.FS
func (c *Card) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	full := filepath.Join(c.root, filepath.FromSlash(name))
	info, err := os.Stat(full)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: unwrapPathError(err)}
	}

	// Directories go straight to the OS; *os.File already implements
	// fs.ReadDirFile.
	if info.IsDir() {
		dir, err := os.Open(full)
		if err != nil {
			return nil, &fs.PathError{Op: "open", Path: name, Err: unwrapPathError(err)}
		}
		return dir, nil
	}

	f, err := OpenMapped(full)
	if err != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: unwrapPathError(err)}
	}
	return f, nil
}

func unwrapPathError(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// MappedFile provides memory-mapped, seekable read access to a file
type MappedFile struct {
	reader  *mmap.ReaderAt
	section *io.SectionReader
	info    fs.FileInfo
	path    string
}

// OpenMapped opens a file with memory mapping
func OpenMapped(name string) (*MappedFile, error) {
	reader, err := mmap.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(name)
	if err != nil {
		reader.Close()
		return nil, err
	}

	return &MappedFile{
		reader:  reader,
		section: io.NewSectionReader(reader, 0, int64(reader.Len())),
		info:    info,
		path:    name,
	}, nil
}

// Read implements io.Reader
func (m *MappedFile) Read(p []byte) (int, error) {
	return m.section.Read(p)
}

// ReadAt reads len(p) bytes at offset
func (m *MappedFile) ReadAt(p []byte, off int64) (int, error) {
	return m.section.ReadAt(p, off)
}

// Seek implements io.Seeker
func (m *MappedFile) Seek(offset int64, whence int) (int64, error) {
	return m.section.Seek(offset, whence)
}

// Stat implements fs.File
func (m *MappedFile) Stat() (fs.FileInfo, error) {
	return m.info, nil
}

// Size returns the mapped size
func (m *MappedFile) Size() int64 {
	return m.section.Size()
}

// Path returns the host path
func (m *MappedFile) Path() string {
	return m.path
}

// Close releases the memory mapping
func (m *MappedFile) Close() error {
	return m.reader.Close()
}

// ReadSeekFile is what the indexer and window reader need from a file
type ReadSeekFile interface {
	fs.File
	io.Seeker
}

// OpenSeekable opens name and checks that the file can seek. name may be
// firmware-style ("/Setlist C.txt"). The returned file must be closed by the
// caller.
func OpenSeekable(fsys fs.FS, name string) (ReadSeekFile, error) {
	name = Clean(name)
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	rs, ok := f.(ReadSeekFile)
	if !ok {
		f.Close()
		return nil, &fs.PathError{Op: "seek", Path: name, Err: ErrNotSeekable}
	}
	return rs, nil
}

// Clean converts a firmware-style path ("/", "/Setlist C.txt") into an
// io/fs path ("." , "Setlist C.txt").
func Clean(p string) string {
	p = strings.TrimLeft(path.Clean("/"+p), "/")
	if p == "" {
		return "."
	}
	return p
}
