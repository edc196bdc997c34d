// SPDX-License-Identifier: EPL-2.0

package source

import (
	"fmt"
	"io"
	"os"
)

// FileSource reads an open file handle. Sources returned by OpenFile own
// the handle and close it; NewFileSource leaves it to the caller.
type FileSource struct {
	f      *os.File
	pos    int64
	length int64
	owned  bool
}

// OpenFile opens path read-only.
func OpenFile(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	s, err := NewFileSource(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	s.owned = true

	return s, nil
}

// NewFileSource wraps f and rewinds it to the start.
func NewFileSource(f *os.File) (*FileSource, error) {
	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrSourceUnavailable, f.Name())
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	return &FileSource{
		f:      f,
		length: info.Size(),
	}, nil
}

func (s *FileSource) Read(p []byte) (int, error) {
	n, err := s.f.Read(p)
	s.pos += int64(n)

	return n, unavailable(err)
}

func (s *FileSource) Seek(offset int64, whence int) (int64, error) {
	pos, err := seekPosition(s.pos, s.length, offset, whence)
	if err != nil {
		return s.pos, err
	}

	if _, err := s.f.Seek(pos, io.SeekStart); err != nil {
		return s.pos, unavailable(err)
	}
	s.pos = pos

	return pos, nil
}

func (s *FileSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeOffset
	}

	n, err := s.f.ReadAt(p, off)
	return n, unavailable(err)
}

func (s *FileSource) Tell() int64 { return s.pos }

func (s *FileSource) Reset() error {
	_, err := s.Seek(0, io.SeekStart)
	return err
}

func (s *FileSource) Len() int64 { return s.length }

func (s *FileSource) Close() error {
	if !s.owned {
		return nil
	}
	s.owned = false

	if err := s.f.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
