// SPDX-License-Identifier: EPL-2.0

package source

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testData = []byte("RIFFWAVE")

// plainReadSeeker hides the io.ReaderAt of the wrapped reader so
// StreamSource has to fall back to seek/read/restore.
type plainReadSeeker struct {
	io.ReadSeeker
}

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

// backends returns one Source of every kind over data.
func backends(t *testing.T, data []byte) map[string]Source {
	t.Helper()

	path := writeTemp(t, data)

	file, err := OpenFile(path)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	handle, err := NewFileSource(f)
	require.NoError(t, err)

	mapped, err := OpenMmap(path)
	require.NoError(t, err)

	stream, err := NewStreamSource(bytes.NewReader(data))
	require.NoError(t, err)

	plain, err := NewStreamSource(plainReadSeeker{bytes.NewReader(data)})
	require.NoError(t, err)

	srcs := map[string]Source{
		"bytes":        NewByteSource(data),
		"stream":       stream,
		"stream-plain": plain,
		"file":         file,
		"file-handle":  handle,
		"mmap":         mapped,
	}

	t.Cleanup(func() {
		for _, s := range srcs {
			_ = s.Close()
		}
		_ = f.Close()
	})

	return srcs
}

func TestSource_Len(t *testing.T) {
	t.Parallel()

	for name, src := range backends(t, testData) {
		assert.Equal(t, int64(len(testData)), src.Len(), name)
	}
}

func TestSource_ReadAdvancesCursor(t *testing.T) {
	t.Parallel()

	for name, src := range backends(t, testData) {
		buf := make([]byte, 4)

		n, err := io.ReadFull(src, buf)
		require.NoError(t, err, name)
		assert.Equal(t, 4, n, name)
		assert.Equal(t, "RIFF", string(buf), name)
		assert.Equal(t, int64(4), src.Tell(), name)

		n, err = io.ReadFull(src, buf)
		require.NoError(t, err, name)
		assert.Equal(t, "WAVE", string(buf[:n]), name)
		assert.Equal(t, int64(8), src.Tell(), name)
	}
}

func TestSource_ShortReadAtEnd(t *testing.T) {
	t.Parallel()

	for name, src := range backends(t, testData) {
		_, err := src.Seek(6, io.SeekStart)
		require.NoError(t, err, name)

		data, err := io.ReadAll(src)
		require.NoError(t, err, name)
		assert.Equal(t, "VE", string(data), name)

		n, err := src.Read(make([]byte, 4))
		assert.Equal(t, 0, n, name)
		assert.ErrorIs(t, err, io.EOF, name)
	}
}

func TestSource_SeekWhence(t *testing.T) {
	t.Parallel()

	for name, src := range backends(t, testData) {
		pos, err := src.Seek(2, io.SeekStart)
		require.NoError(t, err, name)
		assert.Equal(t, int64(2), pos, name)

		pos, err = src.Seek(3, io.SeekCurrent)
		require.NoError(t, err, name)
		assert.Equal(t, int64(5), pos, name)
		assert.Equal(t, int64(5), src.Tell(), name)

		pos, err = src.Seek(-4, io.SeekEnd)
		require.NoError(t, err, name)
		assert.Equal(t, int64(4), pos, name)

		buf := make([]byte, 4)
		_, err = io.ReadFull(src, buf)
		require.NoError(t, err, name)
		assert.Equal(t, "WAVE", string(buf), name)

		// relative seek backwards
		pos, err = src.Seek(-8, io.SeekCurrent)
		require.NoError(t, err, name)
		assert.Equal(t, int64(0), pos, name)
	}
}

func TestSource_SeekPastEnd(t *testing.T) {
	t.Parallel()

	for name, src := range backends(t, testData) {
		pos, err := src.Seek(100, io.SeekStart)
		require.NoError(t, err, name)
		assert.Equal(t, int64(100), pos, name)
		assert.Equal(t, int64(100), src.Tell(), name)

		n, err := src.Read(make([]byte, 4))
		assert.Equal(t, 0, n, name)
		assert.ErrorIs(t, err, io.EOF, name)
	}
}

func TestSource_SeekNegative(t *testing.T) {
	t.Parallel()

	for name, src := range backends(t, testData) {
		_, err := src.Seek(2, io.SeekStart)
		require.NoError(t, err, name)

		_, err = src.Seek(-3, io.SeekCurrent)
		assert.ErrorIs(t, err, ErrNegativeOffset, name)
		assert.Equal(t, int64(2), src.Tell(), name, "failed seek must not move the cursor")

		_, err = src.Seek(0, 42)
		assert.ErrorIs(t, err, ErrInvalidWhence, name)
	}
}

func TestSource_ReadAtKeepsCursor(t *testing.T) {
	t.Parallel()

	for name, src := range backends(t, testData) {
		_, err := src.Seek(1, io.SeekStart)
		require.NoError(t, err, name)

		buf := make([]byte, 4)
		n, err := src.ReadAt(buf, 4)
		require.NoError(t, err, name)
		assert.Equal(t, 4, n, name)
		assert.Equal(t, "WAVE", string(buf), name)
		assert.Equal(t, int64(1), src.Tell(), name)

		one := make([]byte, 1)
		_, err = io.ReadFull(src, one)
		require.NoError(t, err, name)
		assert.Equal(t, "I", string(one), name)
	}
}

func TestSource_ReadAtShort(t *testing.T) {
	t.Parallel()

	for name, src := range backends(t, testData) {
		buf := make([]byte, 4)

		n, err := src.ReadAt(buf, 6)
		assert.Equal(t, 2, n, name)
		assert.Equal(t, "VE", string(buf[:n]), name)
		assert.ErrorIs(t, err, io.EOF, name)

		n, err = src.ReadAt(buf, 50)
		assert.Equal(t, 0, n, name)
		assert.ErrorIs(t, err, io.EOF, name)

		_, err = src.ReadAt(buf, -1)
		assert.ErrorIs(t, err, ErrNegativeOffset, name)
	}
}

func TestSource_Reset(t *testing.T) {
	t.Parallel()

	for name, src := range backends(t, testData) {
		_, err := io.ReadAll(src)
		require.NoError(t, err, name)

		require.NoError(t, src.Reset(), name)
		assert.Equal(t, int64(0), src.Tell(), name)

		buf := make([]byte, 4)
		_, err = io.ReadFull(src, buf)
		require.NoError(t, err, name)
		assert.Equal(t, "RIFF", string(buf), name)
	}
}

func TestSource_Empty(t *testing.T) {
	t.Parallel()

	for name, src := range backends(t, nil) {
		assert.Equal(t, int64(0), src.Len(), name)

		n, err := src.Read(make([]byte, 1))
		assert.Equal(t, 0, n, name)
		assert.ErrorIs(t, err, io.EOF, name)
	}
}

func TestOpenFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenMmap_Missing(t *testing.T) {
	t.Parallel()

	_, err := OpenMmap(filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestFileSource_CloseOwnership(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, testData)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	borrowed, err := NewFileSource(f)
	require.NoError(t, err)
	require.NoError(t, borrowed.Close())

	// the caller's handle is still usable
	_, err = f.Stat()
	assert.NoError(t, err)

	owned, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, owned.Close())
	assert.NoError(t, owned.Close(), "second close is a no-op")
}

func TestMmapSource_IndependentCursors(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, testData)

	a, err := OpenMmap(path)
	require.NoError(t, err)
	defer a.Close()

	b, err := OpenMmap(path)
	require.NoError(t, err)
	defer b.Close()

	_, err = a.Seek(4, io.SeekStart)
	require.NoError(t, err)

	buf := make([]byte, 4)
	_, err = io.ReadFull(b, buf)
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(buf))
	assert.Equal(t, int64(4), a.Tell())
	assert.Equal(t, int64(4), b.Tell())
}
