package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCard(t *testing.T, files map[string]string) *Card {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	card, err := Mount(dir)
	require.NoError(t, err)
	return card
}

func TestAttach_MissingRootAppearsLater(t *testing.T) {
	root := filepath.Join(t.TempDir(), "card")
	card := Attach(root)

	_, err := card.Open(".")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, os.MkdirAll(root, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "Setlist C.txt"), []byte("A\n"), 0o644))

	entries, err := fs.ReadDir(card, ".")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Setlist C.txt", entries[0].Name())
}

func TestMount_RejectsMissingAndFiles(t *testing.T) {
	dir := t.TempDir()

	_, err := Mount(filepath.Join(dir, "nope"))
	assert.Error(t, err)

	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
	_, err = Mount(file)
	assert.Error(t, err)
}

func TestCard_OpenSeeksMappedFile(t *testing.T) {
	card := writeCard(t, map[string]string{"Setlist C.txt": "A\nBB\nCCC\n"})

	f, err := OpenSeekable(card, "Setlist C.txt")
	require.NoError(t, err)
	defer f.Close()

	pos, err := f.Seek(2, io.SeekStart)
	require.NoError(t, err)
	assert.EqualValues(t, 2, pos)

	rest, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "BB\nCCC\n", string(rest))

	pos, err = f.Seek(0, io.SeekCurrent)
	require.NoError(t, err)
	assert.EqualValues(t, 9, pos)
}

func TestOpenSeekable_FirmwarePath(t *testing.T) {
	card := writeCard(t, map[string]string{"Setlist C.txt": "A\n"})

	f, err := OpenSeekable(card, "/Setlist C.txt")
	require.NoError(t, err)
	defer f.Close()

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, "Setlist C.txt", info.Name())
}

func TestCard_OpenEmptyFile(t *testing.T) {
	card := writeCard(t, map[string]string{"empty.txt": ""})

	f, err := OpenSeekable(card, "empty.txt")
	require.NoError(t, err)
	defer f.Close()

	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestCard_OpenMissing(t *testing.T) {
	card := writeCard(t, nil)

	_, err := card.Open("missing.txt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestCard_OpenInvalidPath(t *testing.T) {
	card := writeCard(t, nil)

	_, err := card.Open("../escape.txt")
	assert.True(t, errors.Is(err, fs.ErrInvalid))
}

func TestCard_ReadDir(t *testing.T) {
	card := writeCard(t, map[string]string{
		"song1.txt":    "a\n",
		"song2.txt":    "b\n",
		"sets/gig.txt": "c\n",
		".DS_Store":    "junk",
	})

	entries, err := fs.ReadDir(card, ".")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{".DS_Store", "sets", "song1.txt", "song2.txt"}, names)
}

func TestCard_UsedBytes(t *testing.T) {
	card := writeCard(t, map[string]string{
		"a.txt":     "1234",
		"sub/b.txt": "12",
	})

	used, err := card.UsedBytes()
	require.NoError(t, err)
	assert.EqualValues(t, 6, used)
}

type noSeekFS struct{}

type noSeekFile struct{ fs.File }

func (noSeekFS) Open(name string) (fs.File, error) {
	f, err := fstest.MapFS{"a.txt": {Data: []byte("a")}}.Open(name)
	if err != nil {
		return nil, err
	}
	return noSeekFile{f}, nil
}

func TestOpenSeekable_RejectsPlainFile(t *testing.T) {
	_, err := OpenSeekable(noSeekFS{}, "a.txt")
	assert.True(t, errors.Is(err, ErrNotSeekable))
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/", "."},
		{"", "."},
		{".", "."},
		{"/Setlist C.txt", "Setlist C.txt"},
		{"sets/gig.txt", "sets/gig.txt"},
		{"/sets/../gig.txt", "gig.txt"},
		{"/../../etc", "etc"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}
