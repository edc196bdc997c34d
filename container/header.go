// SPDX-License-Identifier: EPL-2.0

package container

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/ik5/riffwalk/source"
)

// probeWidth is how many leading bytes select the container family.
const probeWidth = 4

// Metadata is what the header declares about a container.
type Metadata struct {
	// Master is the master identifier: a FOURCC, or an upper case GUID for W64.
	Master    string
	ByteOrder Endianness
	Family    Family
	// Form is the sub-format tag, e.g. "WAVE" or "AIFF" (a GUID for W64).
	Form string
	// DeclaredSize is the number of bytes following the master size field,
	// with the format overhead already removed.
	DeclaredSize uint64

	// Offset is where the header starts in the source.
	Offset int64
	// DataOffset is the first chunk boundary, right after the form type.
	DataOffset int64
	// End is the declared end of the container. Chunk iteration stops there
	// even if the source continues.
	End int64
}

// Classify reads the container header at start and returns its metadata
// together with the Format that drives chunk reading. On success the
// source cursor sits on the first chunk boundary.
//
// Unknown master tags fail with ErrInvalidContainer. RF64 is recognized
// but fails with ErrNotImplemented; the returned Metadata still names it.
func Classify(src source.Source, start int64) (Metadata, Format, error) {
	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return Metadata{}, Format{}, fmt.Errorf("%w", err)
	}

	probe, err := readField(src, probeWidth)
	if err != nil {
		return Metadata{}, Format{}, headerError(err)
	}

	tag, err := decodeText(probe)
	if err != nil {
		return Metadata{}, Format{}, fmt.Errorf("%w: %w", ErrInvalidContainer, err)
	}

	order, family, ok := LookupMaster(tag)
	if !ok {
		return Metadata{}, Format{}, fmt.Errorf("%w: unknown master identifier %q at offset %d", ErrInvalidContainer, tag, start)
	}

	switch family {
	case FamilyW64:
		return classifyW64(src, start)

	case FamilyRF64:
		meta := Metadata{
			Master:    tag,
			ByteOrder: order,
			Family:    family,
			Offset:    start,
		}
		format, err := resolveExtendedSizes(src, meta, StandardFormat(family, order))
		return meta, format, err
	}

	return classifyStandard(src, start, tag, StandardFormat(family, order))
}

func classifyStandard(src source.Source, start int64, tag string, format Format) (Metadata, Format, error) {
	sizeField, err := readField(src, format.SizeWidth)
	if err != nil {
		return Metadata{}, Format{}, headerError(err)
	}

	formField, err := readField(src, format.IdentifierWidth)
	if err != nil {
		return Metadata{}, Format{}, headerError(err)
	}

	form, err := decodeText(formField)
	if err != nil {
		return Metadata{}, Format{}, fmt.Errorf("%w: %w", ErrInvalidContainer, err)
	}

	size := format.ByteOrder.Uint(sizeField)

	return Metadata{
		Master:       tag,
		ByteOrder:    format.ByteOrder,
		Family:       format.Family,
		Form:         form,
		DeclaredSize: size,
		Offset:       start,
		DataOffset:   src.Tell(),
		End:          addOffset(start, int64(format.FieldsWidth()), size),
	}, format, nil
}

// classifyW64 rereads the header from start, since the probe only saw the
// first four bytes of the master GUID.
func classifyW64(src source.Source, start int64) (Metadata, Format, error) {
	format := W64Format()

	if _, err := src.Seek(start, io.SeekStart); err != nil {
		return Metadata{}, Format{}, fmt.Errorf("%w", err)
	}

	masterField, err := readField(src, format.IdentifierWidth)
	if err != nil {
		return Metadata{}, Format{}, headerError(err)
	}

	sizeField, err := readField(src, format.SizeWidth)
	if err != nil {
		return Metadata{}, Format{}, headerError(err)
	}

	formField, err := readField(src, format.IdentifierWidth)
	if err != nil {
		return Metadata{}, Format{}, headerError(err)
	}

	master, err := decodeGUID(masterField)
	if err != nil {
		return Metadata{}, Format{}, fmt.Errorf("%w: %w", ErrInvalidContainer, err)
	}

	form, err := decodeGUID(formField)
	if err != nil {
		return Metadata{}, Format{}, fmt.Errorf("%w: %w", ErrInvalidContainer, err)
	}

	raw := format.ByteOrder.Uint(sizeField)
	if raw < format.Overhead {
		return Metadata{}, Format{}, fmt.Errorf("%w: W64 size %d is smaller than its %d byte header", ErrInvalidContainer, raw, format.Overhead)
	}
	size := raw - format.Overhead

	return Metadata{
		Master:       master,
		ByteOrder:    format.ByteOrder,
		Family:       format.Family,
		Form:         form,
		DeclaredSize: size,
		Offset:       start,
		DataOffset:   src.Tell(),
		End:          addOffset(start, int64(format.FieldsWidth()), size),
	}, format, nil
}

// resolveExtendedSizes is where the RF64 ds64 chunk would be read to fill
// Format.ExtendedSizes and the real master size.
// TODO: implement against EBU Tech 3306 once fixture files are available.
func resolveExtendedSizes(_ source.Source, meta Metadata, format Format) (Format, error) {
	return format, fmt.Errorf("%w: %s ds64 size resolution", ErrNotImplemented, meta.Family)
}

// headerError reports a header that cannot be read in full as an invalid
// container, keeping the end-of-source cause.
func headerError(err error) error {
	if errors.Is(err, ErrEndOfSource) {
		return fmt.Errorf("%w: truncated header: %w", ErrInvalidContainer, err)
	}
	return err
}

// addOffset returns base+fields+size, saturating at math.MaxInt64.
func addOffset(base, fields int64, size uint64) int64 {
	head := base + fields
	if size > uint64(math.MaxInt64-head) {
		return math.MaxInt64
	}
	return head + int64(size)
}
