// SPDX-License-Identifier: EPL-2.0

package container

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/riffwalk/source"
)

// Chunk is one identifier-tagged, length-prefixed unit of a container.
type Chunk struct {
	ID string
	// DeclaredSize is the size field as encoded, before the overhead is removed.
	DeclaredSize uint64
	// Payload is a private copy; it stays valid after further reads.
	Payload []byte
	// Start is the offset of the identifier field.
	Start int64
	// End is the offset after the payload and its padding, where the next
	// chunk begins.
	End int64
}

// Len is the payload length in bytes.
func (c Chunk) Len() int { return len(c.Payload) }

// Padding is the number of alignment bytes skipped after the payload.
func (c Chunk) Padding(f Format) int64 {
	return c.End - c.Start - int64(f.FieldsWidth()) - int64(len(c.Payload))
}

// ReadChunk reads the chunk at the cursor of src and leaves the cursor on
// the next chunk boundary.
//
// ErrEndOfSource is returned when the identifier and size fields, or the
// payload they declare, do not fit in what is left of src. Backend
// failures carry source.ErrSourceUnavailable.
func ReadChunk(src source.Source, f Format) (Chunk, error) {
	start := src.Tell()
	length := src.Len()

	fields := int64(f.FieldsWidth())
	if start > length || length-start < fields {
		return Chunk{}, fmt.Errorf("%w: insufficient bytes to read identifier/size fields at offset %d (%d remaining)",
			ErrEndOfSource, start, max(length-start, 0))
	}

	idField, err := readField(src, f.IdentifierWidth)
	if err != nil {
		return Chunk{}, err
	}

	id, err := f.decodeIdentifier(idField)
	if err != nil {
		return Chunk{}, fmt.Errorf("identifier at offset %d: %w", start, err)
	}

	sizeField, err := readField(src, f.SizeWidth)
	if err != nil {
		return Chunk{}, err
	}
	raw := f.ByteOrder.Uint(sizeField)

	size, ok := f.payloadLength(id, raw)
	if !ok {
		return Chunk{}, fmt.Errorf("%w: chunk %q at offset %d declares %d bytes, less than the %d byte overhead",
			ErrEndOfSource, id, start, raw, f.Overhead)
	}

	pos := src.Tell()
	if size > uint64(length-pos) {
		return Chunk{}, fmt.Errorf("%w: payload exceeds source length: chunk %q at offset %d declares %d bytes, %d remaining",
			ErrEndOfSource, id, start, size, length-pos)
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(src, payload); err != nil {
		return Chunk{}, eosError(err, len(payload), pos)
	}

	if padding := f.Padding(size); padding > 0 {
		if _, err := src.Seek(int64(padding), io.SeekCurrent); err != nil {
			return Chunk{}, fmt.Errorf("%w", err)
		}
	}

	return Chunk{
		ID:           id,
		DeclaredSize: raw,
		Payload:      payload,
		Start:        start,
		End:          src.Tell(),
	}, nil
}

// readField reads exactly n bytes at the cursor.
func readField(src source.Source, n int) ([]byte, error) {
	pos := src.Tell()
	buf := make([]byte, n)

	if _, err := io.ReadFull(src, buf); err != nil {
		return nil, eosError(err, n, pos)
	}

	return buf, nil
}

// eosError maps a short read onto ErrEndOfSource and passes anything else on.
func eosError(err error, want int, pos int64) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: wanted %d bytes at offset %d", ErrEndOfSource, want, pos)
	}
	return err
}
