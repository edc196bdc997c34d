// SPDX-License-Identifier: EPL-2.0

package source

import (
	"fmt"
	"io"
	"os"
)

type options struct {
	mmap bool
}

// Option configures Normalize.
type Option func(*options)

// WithMmap makes Normalize map path inputs into memory instead of reading
// them through a file handle. Worth it for large files that are re-read.
func WithMmap(enabled bool) Option {
	return func(o *options) {
		o.mmap = enabled
	}
}

// Normalize turns input into the cheapest Source that can serve it:
//
//   - a Source is returned as is
//   - []byte becomes a ByteSource
//   - a string is a file path: FileSource, or MmapSource with WithMmap(true)
//   - *os.File becomes a FileSource that leaves the handle open
//   - any other io.ReadSeeker becomes a StreamSource
//   - a plain io.Reader is read fully into a ByteSource
//
// Closing the returned Source releases only what Normalize opened itself.
func Normalize(input any, opts ...Option) (Source, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	switch in := input.(type) {
	case Source:
		return in, nil

	case []byte:
		return NewByteSource(in), nil

	case string:
		if o.mmap {
			if err := checkRegular(in); err != nil {
				return nil, err
			}
			return OpenMmap(in)
		}
		return OpenFile(in)

	case *os.File:
		return NewFileSource(in)

	case io.ReadSeeker:
		return NewStreamSource(in)

	case io.Reader:
		data, err := io.ReadAll(in)
		if err != nil {
			return nil, fmt.Errorf("%w: reading stream: %w", ErrSourceUnavailable, err)
		}
		return NewByteSource(data), nil

	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedInput, input)
	}
}

func checkRegular(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrSourceUnavailable, path)
	}

	return nil
}
