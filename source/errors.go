// SPDX-License-Identifier: EPL-2.0

package source

import "errors"

var (
	// ErrSourceUnavailable wraps every failure of the byte backend itself
	// (open, stat, map, read), as opposed to problems with the bytes.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrUnsupportedInput is returned by Normalize for input types it cannot turn into a Source
	ErrUnsupportedInput = errors.New("unsupported source input")

	ErrNegativeOffset = errors.New("negative source offset")
	ErrInvalidWhence  = errors.New("invalid whence")
)
