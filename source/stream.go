// SPDX-License-Identifier: EPL-2.0

package source

import (
	"fmt"
	"io"
)

// StreamSource adapts any io.ReadSeeker. The length is probed once at
// construction by seeking to the end.
type StreamSource struct {
	rs     io.ReadSeeker
	ra     io.ReaderAt // rs as an io.ReaderAt, when it is one
	pos    int64
	length int64
}

// NewStreamSource probes the length of rs and rewinds it to the start.
func NewStreamSource(rs io.ReadSeeker) (*StreamSource, error) {
	length, err := rs.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("%w: probing length: %w", ErrSourceUnavailable, err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: rewinding: %w", ErrSourceUnavailable, err)
	}

	s := &StreamSource{
		rs:     rs,
		length: length,
	}
	if ra, ok := rs.(io.ReaderAt); ok {
		s.ra = ra
	}

	return s, nil
}

func (s *StreamSource) Read(p []byte) (int, error) {
	if s.pos >= s.length {
		return 0, io.EOF
	}

	n, err := s.rs.Read(p)
	s.pos += int64(n)

	return n, unavailable(err)
}

func (s *StreamSource) Seek(offset int64, whence int) (int64, error) {
	pos, err := seekPosition(s.pos, s.length, offset, whence)
	if err != nil {
		return s.pos, err
	}

	if _, err := s.rs.Seek(pos, io.SeekStart); err != nil {
		return s.pos, unavailable(err)
	}
	s.pos = pos

	return pos, nil
}

// ReadAt uses the wrapped value's own ReadAt when it has one, otherwise it
// seeks away, reads and restores the cursor.
func (s *StreamSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeOffset
	}

	if s.ra != nil {
		n, err := s.ra.ReadAt(p, off)
		return n, unavailable(err)
	}

	if _, err := s.rs.Seek(off, io.SeekStart); err != nil {
		return 0, unavailable(err)
	}

	n, err := io.ReadFull(s.rs, p)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}

	if _, serr := s.rs.Seek(s.pos, io.SeekStart); serr != nil {
		return n, unavailable(serr)
	}

	return n, unavailable(err)
}

func (s *StreamSource) Tell() int64 { return s.pos }

func (s *StreamSource) Reset() error {
	_, err := s.Seek(0, io.SeekStart)
	return err
}

func (s *StreamSource) Len() int64 { return s.length }

// Close leaves the wrapped stream open; it belongs to the caller.
func (s *StreamSource) Close() error { return nil }
