// SPDX-License-Identifier: EPL-2.0

package source

import (
	"fmt"
	"io"

	"golang.org/x/exp/mmap"
)

// MmapSource reads a read-only memory mapping of a file. The cursor is
// plain bookkeeping, so seeks in any direction never touch the mapping.
//
// Several MmapSource values may map the same file; each keeps its own cursor.
type MmapSource struct {
	m   *mmap.ReaderAt
	pos int64
}

// OpenMmap maps path read-only. The mapping is released by Close.
func OpenMmap(path string) (*MmapSource, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	return &MmapSource{m: m}, nil
}

func (s *MmapSource) Read(p []byte) (int, error) {
	if s.pos >= s.Len() {
		return 0, io.EOF
	}

	n, err := s.m.ReadAt(p, s.pos)
	s.pos += int64(n)
	if err == io.EOF && n > 0 {
		err = nil
	}

	return n, unavailable(err)
}

func (s *MmapSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeOffset
	}

	// mmap.ReaderAt rejects offsets past the mapping instead of reporting EOF
	if off >= s.Len() {
		return 0, io.EOF
	}

	n, err := s.m.ReadAt(p, off)
	return n, unavailable(err)
}

func (s *MmapSource) Seek(offset int64, whence int) (int64, error) {
	pos, err := seekPosition(s.pos, s.Len(), offset, whence)
	if err != nil {
		return s.pos, err
	}
	s.pos = pos

	return pos, nil
}

func (s *MmapSource) Tell() int64 { return s.pos }

func (s *MmapSource) Reset() error {
	s.pos = 0
	return nil
}

func (s *MmapSource) Len() int64 { return int64(s.m.Len()) }

func (s *MmapSource) Close() error {
	if err := s.m.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
