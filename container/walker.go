// SPDX-License-Identifier: EPL-2.0

package container

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"github.com/ik5/riffwalk/source"
)

// Termination records why a walk stopped.
type Termination uint8

const (
	// Scanning means the walk has not finished yet.
	Scanning Termination = iota
	// Clean means the cursor reached the declared end of the container.
	Clean
	// Truncated means the source ran out before the declared end.
	Truncated
	// Limited means the walk stopped after the chunk limit.
	Limited
	// Failed means the source itself returned an error.
	Failed
)

func (t Termination) String() string {
	switch t {
	case Scanning:
		return "scanning"
	case Clean:
		return "clean"
	case Truncated:
		return "truncated"
	case Limited:
		return "limited"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Termination(%d)", uint8(t))
}

type options struct {
	start  int64
	limit  int
	logger *slog.Logger
}

// Option configures Parse.
type Option func(*options)

// WithStart parses a container embedded at offset instead of at zero.
func WithStart(offset int64) Option {
	return func(o *options) {
		o.start = offset
	}
}

// WithLimit stops the walk after n chunks. Zero or less means no limit.
func WithLimit(n int) Option {
	return func(o *options) {
		o.limit = n
	}
}

// WithLogger sets where chunk events are logged. Nothing is logged by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Walker drives ReadChunk from the first chunk boundary to the declared
// end of a container.
//
// A Walker is one shot: it advances the cursor of its Source and cannot be
// rewound. Walking again needs a reset Source and a new Parse. Only one
// Walker may drive a given Source at a time.
type Walker struct {
	src    source.Source
	meta   Metadata
	format Format
	logger *slog.Logger
	limit  int

	count int
	chunk Chunk
	term  Termination
	cause error
	err   error
}

// Parse classifies the header of src and returns a Walker positioned on
// the first chunk. Drive it lazily with Next or Chunks, or eagerly with
// Collect.
func Parse(src source.Source, opts ...Option) (*Walker, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}

	meta, format, err := Classify(src, o.start)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("container header",
		"master", meta.Master,
		"family", meta.Family,
		"form", meta.Form,
		"byte_order", meta.ByteOrder.String(),
		"declared_size", meta.DeclaredSize,
		"end", meta.End,
	)

	return &Walker{
		src:    src,
		meta:   meta,
		format: format,
		logger: o.logger,
		limit:  o.limit,
	}, nil
}

// Next reads the next chunk and reports whether there was one. After it
// returns false, Termination, Cause and Err tell why.
func (w *Walker) Next() bool {
	if w.term != Scanning {
		return false
	}

	if w.limit > 0 && w.count >= w.limit {
		w.finish(Limited)
		return false
	}

	if w.src.Tell() >= w.meta.End {
		w.finish(Clean)
		return false
	}

	c, err := ReadChunk(w.src, w.format)
	if err != nil {
		if errors.Is(err, ErrEndOfSource) {
			w.cause = err
			w.finish(Truncated)
			return false
		}

		w.err = err
		w.finish(Failed)
		return false
	}

	w.chunk = c
	w.count++
	w.logger.Debug("chunk",
		"id", c.ID,
		"start", c.Start,
		"end", c.End,
		"size", c.Len(),
	)

	return true
}

func (w *Walker) finish(t Termination) {
	w.term = t

	switch t {
	case Truncated:
		w.logger.Warn("container truncated",
			"chunks", w.count,
			"offset", w.src.Tell(),
			"declared_end", w.meta.End,
			"cause", w.cause,
		)
	case Failed:
		w.logger.Error("container walk failed", "chunks", w.count, "error", w.err)
	default:
		w.logger.Debug("container walk finished", "termination", t.String(), "chunks", w.count)
	}
}

// Chunk returns the chunk read by the last successful Next.
func (w *Walker) Chunk() Chunk { return w.chunk }

// Chunks returns the remaining chunks as a lazy sequence. Stopping the
// range early leaves the cursor on the next chunk boundary.
func (w *Walker) Chunks() iter.Seq[Chunk] {
	return func(yield func(Chunk) bool) {
		for w.Next() {
			if !yield(w.chunk) {
				return
			}
		}
	}
}

// Collect reads every remaining chunk. A truncated container is not an
// error: check Container.Truncated. When the source fails, the chunks read
// so far are returned together with the error.
func (w *Walker) Collect() (*Container, error) {
	var chunks []Chunk
	for w.Next() {
		chunks = append(chunks, w.chunk)
	}

	c := &Container{
		Metadata:    w.meta,
		Format:      w.format,
		Chunks:      chunks,
		Termination: w.term,
		Cause:       w.cause,
	}

	if w.err != nil {
		return c, w.err
	}

	return c, nil
}

func (w *Walker) Metadata() Metadata       { return w.meta }
func (w *Walker) Format() Format           { return w.format }
func (w *Walker) Termination() Termination { return w.term }

// Cause is the end-of-source error behind a Truncated termination.
func (w *Walker) Cause() error { return w.cause }

// Err is the source error behind a Failed termination.
func (w *Walker) Err() error { return w.err }

// Container is the result of a complete walk.
type Container struct {
	Metadata    Metadata
	Format      Format
	Chunks      []Chunk
	Termination Termination
	// Cause holds the ErrEndOfSource error when Termination is Truncated.
	Cause error
}

// Truncated reports whether the source ended before the declared end.
func (c *Container) Truncated() bool { return c.Termination == Truncated }

// Find returns the first chunk with the given identifier.
func (c *Container) Find(id string) (Chunk, bool) {
	for _, ch := range c.Chunks {
		if ch.ID == id {
			return ch, true
		}
	}
	return Chunk{}, false
}

// FindAll returns every chunk with the given identifier, in source order.
func (c *Container) FindAll(id string) []Chunk {
	var out []Chunk
	for _, ch := range c.Chunks {
		if ch.ID == id {
			out = append(out, ch)
		}
	}
	return out
}
