// SPDX-License-Identifier: EPL-2.0

package source

import (
	"errors"
	"fmt"
	"io"
)

// Source is a random-access byte range of fixed length with a cursor.
//
// Seek accepts positions past Len; the next Read then returns 0, io.EOF.
// A position before the start is rejected with ErrNegativeOffset.
// ReadAt never moves the cursor.
type Source interface {
	io.Reader
	io.Seeker
	io.ReaderAt

	// Tell reports the cursor position.
	Tell() int64
	// Reset rewinds the cursor to the start.
	Reset() error
	// Len reports the total length. It is fixed at construction.
	Len() int64
	// Close releases whatever the source opened itself. Values handed in
	// by the caller (an *os.File, an io.ReadSeeker) stay open.
	Close() error
}

// seekPosition resolves a Seek request against the current cursor and size.
func seekPosition(cur, size, offset int64, whence int) (int64, error) {
	var pos int64

	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = cur + offset
	case io.SeekEnd:
		pos = size + offset
	default:
		return cur, fmt.Errorf("%w: %d", ErrInvalidWhence, whence)
	}

	if pos < 0 {
		return cur, fmt.Errorf("%w: %d", ErrNegativeOffset, pos)
	}

	return pos, nil
}

// unavailable tags backend errors, leaving io.EOF untouched so Read keeps
// the io.Reader contract.
func unavailable(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return err
	}

	return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
}
