package index

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mapFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func TestBuild_FourLines(t *testing.T) {
	fsys := mapFS(map[string]string{"set.txt": "A\nBB\nCCC\nDDDD\n"})

	idx, err := Build(fsys, "set.txt", 0)
	require.NoError(t, err)

	assert.Equal(t, 4, idx.LineCount())
	assert.Equal(t, 4, idx.Reachable())
	assert.Equal(t, []int64{0, 2, 5, 9, 14}, idx.Offsets())
	assert.EqualValues(t, 14, idx.Size())
	assert.EqualValues(t, 14, idx.End())
	assert.False(t, idx.Truncated())
}

func TestBuild_EmptyFile(t *testing.T) {
	fsys := mapFS(map[string]string{"empty.txt": ""})

	idx, err := Build(fsys, "empty.txt", 0)
	require.NoError(t, err)

	assert.Equal(t, 0, idx.LineCount())
	assert.Equal(t, 0, idx.Reachable())
	assert.Equal(t, []int64{0}, idx.Offsets())
}

func TestBuild_UnterminatedLine(t *testing.T) {
	fsys := mapFS(map[string]string{"one.txt": "just one song"})

	idx, err := Build(fsys, "one.txt", 0)
	require.NoError(t, err)

	assert.Equal(t, 0, idx.LineCount())
	assert.EqualValues(t, 13, idx.End())
}

func TestBuild_LeadingNewline(t *testing.T) {
	fsys := mapFS(map[string]string{"set.txt": "\nA\nB"})

	idx, err := Build(fsys, "set.txt", 0)
	require.NoError(t, err)

	assert.Equal(t, 2, idx.LineCount())
	assert.Equal(t, []int64{0, 1, 3}, idx.Offsets())
}

func TestBuild_LastEntryFollowsFinalLineFeed(t *testing.T) {
	content := "Song 1\nSong 2\n\nSong 4 (encore)\nno newline"
	fsys := mapFS(map[string]string{"set.txt": content})

	idx, err := Build(fsys, "set.txt", 0)
	require.NoError(t, err)

	k := strings.Count(content, "\n")
	require.Equal(t, k, idx.LineCount())

	last, ok := idx.Offset(k)
	require.True(t, ok)
	assert.EqualValues(t, strings.LastIndexByte(content, '\n')+1, last)
}

func TestBuild_OffsetsMatchReferenceSplit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString(strings.Repeat("x", i%7))
		b.WriteByte('\n')
	}
	content := b.String()
	fsys := mapFS(map[string]string{"set.txt": content})

	idx, err := Build(fsys, "set.txt", 0)
	require.NoError(t, err)

	lines := strings.SplitAfter(content, "\n")
	var want int64
	for i := 0; i < idx.Reachable(); i++ {
		got, ok := idx.Offset(i)
		require.True(t, ok)
		assert.Equal(t, want, got, "line %d", i)
		want += int64(len(lines[i]))
	}
}

func TestBuild_SpansChunks(t *testing.T) {
	line := strings.Repeat("y", chunkSize/3) + "\n"
	content := strings.Repeat(line, 10)
	fsys := mapFS(map[string]string{"big.txt": content})

	idx, err := Build(fsys, "big.txt", 0)
	require.NoError(t, err)

	assert.Equal(t, 10, idx.LineCount())
	for i := 0; i <= 10; i++ {
		off, ok := idx.Offset(i)
		require.True(t, ok)
		assert.EqualValues(t, i*len(line), off)
	}
}

func TestBuild_TooManyLines(t *testing.T) {
	content := strings.Repeat("song\n", 12)
	fsys := mapFS(map[string]string{"long.txt": content})

	idx, err := Build(fsys, "long.txt", 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTooManyLines))

	var tooMany *TooManyLinesError
	require.True(t, errors.As(err, &tooMany))
	assert.Equal(t, 12, tooMany.Lines)
	assert.Equal(t, 5, tooMany.Max)

	require.NotNil(t, idx)
	assert.True(t, idx.Truncated())
	assert.Equal(t, 12, idx.LineCount())
	assert.Equal(t, 5, idx.Reachable())
	assert.Len(t, idx.Offsets(), 6)
	assert.EqualValues(t, 25, idx.End())

	_, ok := idx.Offset(6)
	assert.False(t, ok)
}

func TestBuild_ExactlyAtCeiling(t *testing.T) {
	fsys := mapFS(map[string]string{"set.txt": strings.Repeat("s\n", 5)})

	idx, err := Build(fsys, "set.txt", 5)
	require.NoError(t, err)
	assert.False(t, idx.Truncated())
	assert.Equal(t, 5, idx.Reachable())
}

func TestBuild_DefaultCeiling(t *testing.T) {
	fsys := mapFS(map[string]string{"set.txt": strings.Repeat("s\n", DefaultMaxLines+1)})

	idx, err := Build(fsys, "set.txt", -1)
	assert.True(t, errors.Is(err, ErrTooManyLines))
	assert.Equal(t, DefaultMaxLines, idx.MaxLines())
	assert.Equal(t, DefaultMaxLines, idx.Reachable())
}

func TestBuild_MissingFile(t *testing.T) {
	idx, err := Build(mapFS(nil), "nope.txt", 0)
	assert.Nil(t, idx)
	assert.True(t, errors.Is(err, ErrFileOpen))

	var openErr *FileOpenError
	require.True(t, errors.As(err, &openErr))
	assert.Equal(t, "nope.txt", openErr.Path)
}

func TestOffset_OutOfRange(t *testing.T) {
	fsys := mapFS(map[string]string{"set.txt": "a\nb\n"})

	idx, err := Build(fsys, "set.txt", 0)
	require.NoError(t, err)

	_, ok := idx.Offset(-1)
	assert.False(t, ok)
	_, ok = idx.Offset(3)
	assert.False(t, ok)
	off, ok := idx.Offset(2)
	assert.True(t, ok)
	assert.EqualValues(t, 4, off)
}
