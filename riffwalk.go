// SPDX-License-Identifier: EPL-2.0

package riffwalk

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ik5/riffwalk/container"
	"github.com/ik5/riffwalk/source"
)

type options struct {
	source []source.Option
	parse  []container.Option
}

// Option configures Open and ReadAll.
type Option func(*options)

// WithMmap maps path inputs into memory instead of reading them through a
// file handle.
func WithMmap(enabled bool) Option {
	return func(o *options) {
		o.source = append(o.source, source.WithMmap(enabled))
	}
}

// WithStart parses a container that begins at offset rather than at zero.
func WithStart(offset int64) Option {
	return func(o *options) {
		o.parse = append(o.parse, container.WithStart(offset))
	}
}

// WithLimit stops after n chunks.
func WithLimit(n int) Option {
	return func(o *options) {
		o.parse = append(o.parse, container.WithLimit(n))
	}
}

// WithLogger logs header, chunk and termination events to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.parse = append(o.parse, container.WithLogger(logger))
	}
}

// Reader is a lazy walk over a container opened by Open. It embeds the
// container.Walker, so Next, Chunk, Chunks and Collect are all available.
type Reader struct {
	*container.Walker

	src   source.Source
	owned bool
}

// Open normalizes input (a path, []byte, *os.File, io.Reader or an existing
// source.Source), classifies its header and returns a Reader on the first
// chunk. The Reader must be closed; Close leaves a caller supplied Source open.
func Open(input any, opts ...Option) (*Reader, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	_, given := input.(source.Source)

	src, err := source.Normalize(input, o.source...)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	w, err := container.Parse(src, o.parse...)
	if err != nil {
		if !given {
			err = errors.Join(err, src.Close())
		}
		return nil, err
	}

	return &Reader{
		Walker: w,
		src:    src,
		owned:  !given,
	}, nil
}

// Source returns the Source the Reader walks.
func (r *Reader) Source() source.Source { return r.src }

func (r *Reader) Close() error {
	if !r.owned {
		return nil
	}
	r.owned = false

	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// ReadAll parses input and collects every chunk. A truncated container is
// returned without error; check Container.Truncated.
func ReadAll(input any, opts ...Option) (*container.Container, error) {
	r, err := Open(input, opts...)
	if err != nil {
		return nil, err
	}

	c, err := r.Collect()
	if cerr := r.Close(); cerr != nil && err == nil {
		err = cerr
	}

	return c, err
}
