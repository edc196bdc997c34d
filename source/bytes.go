// SPDX-License-Identifier: EPL-2.0

package source

import (
	"bytes"
	"io"
)

// ByteSource serves an in-memory block. The slice is not copied; the
// caller must not modify it while the source is in use.
type ByteSource struct {
	r *bytes.Reader
}

func NewByteSource(data []byte) *ByteSource {
	return &ByteSource{r: bytes.NewReader(data)}
}

func (s *ByteSource) Read(p []byte) (int, error) { return s.r.Read(p) }

func (s *ByteSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeOffset
	}

	return s.r.ReadAt(p, off)
}

func (s *ByteSource) Seek(offset int64, whence int) (int64, error) {
	pos, err := seekPosition(s.Tell(), s.Len(), offset, whence)
	if err != nil {
		return pos, err
	}

	return s.r.Seek(pos, io.SeekStart)
}

// Tell asks the reader for its raw index: bytes.Reader.Len reports zero
// once the cursor is past the end, so Size-Len would be wrong there.
func (s *ByteSource) Tell() int64 {
	pos, _ := s.r.Seek(0, io.SeekCurrent)
	return pos
}

func (s *ByteSource) Reset() error {
	_, err := s.r.Seek(0, io.SeekStart)
	return err
}

func (s *ByteSource) Len() int64   { return s.r.Size() }
func (s *ByteSource) Close() error { return nil }
