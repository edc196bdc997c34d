// SPDX-License-Identifier: EPL-2.0

package container

import (
	"encoding/binary"
	"maps"
)

// Endianness is the byte order of size fields.
type Endianness uint8

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) String() string {
	if e == BigEndian {
		return "big"
	}
	return "little"
}

// ByteOrder returns the encoding/binary order matching e.
func (e Endianness) ByteOrder() binary.ByteOrder {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// Uint decodes an unsigned integer of len(b) bytes, at most 8.
func (e Endianness) Uint(b []byte) uint64 {
	switch len(b) {
	case 2:
		return uint64(e.ByteOrder().Uint16(b))
	case 4:
		return uint64(e.ByteOrder().Uint32(b))
	case 8:
		return e.ByteOrder().Uint64(b)
	}

	var v uint64
	if e == BigEndian {
		for _, x := range b {
			v = v<<8 | uint64(x)
		}
		return v
	}
	for i := len(b) - 1; i >= 0; i-- {
		v = v<<8 | uint64(b[i])
	}
	return v
}

// IdentifierKind selects how identifier fields are decoded.
type IdentifierKind uint8

const (
	// TextIdentifier is a fixed width ISO-8859-1 tag such as a FOURCC.
	TextIdentifier IdentifierKind = iota
	// GUIDIdentifier is a 16 byte GUID in its mixed-endian on-disk layout.
	GUIDIdentifier
)

func (k IdentifierKind) String() string {
	if k == GUIDIdentifier {
		return "guid"
	}
	return "text"
}

// Family names a container family.
type Family string

const (
	FamilyIFF  Family = "IFF"
	FamilyRIFF Family = "RIFF"
	FamilyRF64 Family = "RF64"
	FamilyW64  Family = "W64"
)

const (
	standardIdentifierWidth = 4
	standardSizeWidth       = 4
	standardAlignment       = 2

	w64IdentifierWidth = 16
	w64SizeWidth       = 8
	w64Alignment       = 8
	// W64 sizes count their own 16 byte id and 8 byte size field.
	w64Overhead = w64IdentifierWidth + w64SizeWidth
)

// Format describes how one container family lays out its chunks. It is
// derived once from the header and treated as immutable afterwards.
type Format struct {
	Family          Family
	ByteOrder       Endianness
	Identifier      IdentifierKind
	IdentifierWidth int
	SizeWidth       int
	// Alignment pads every payload to a multiple of this many bytes.
	Alignment int
	// Overhead is subtracted from every size field to get the payload length.
	Overhead uint64
	// ExtendedSizes maps chunk identifiers to payload lengths declared
	// elsewhere in the file. Only RF64 (ds64) populates it.
	ExtendedSizes map[string]uint64
}

// StandardFormat is the 4 byte id, 4 byte size, 2 byte alignment layout
// shared by IFF, RIFF, RIFX and RF64.
func StandardFormat(family Family, order Endianness) Format {
	return Format{
		Family:          family,
		ByteOrder:       order,
		Identifier:      TextIdentifier,
		IdentifierWidth: standardIdentifierWidth,
		SizeWidth:       standardSizeWidth,
		Alignment:       standardAlignment,
	}
}

// W64Format is the Sony Wave64 layout: GUID ids, 64 bit little-endian
// sizes that include the 24 header bytes, 8 byte alignment.
func W64Format() Format {
	return Format{
		Family:          FamilyW64,
		ByteOrder:       LittleEndian,
		Identifier:      GUIDIdentifier,
		IdentifierWidth: w64IdentifierWidth,
		SizeWidth:       w64SizeWidth,
		Alignment:       w64Alignment,
		Overhead:        w64Overhead,
	}
}

// WithExtendedSizes returns a copy of f carrying its own copy of sizes.
func (f Format) WithExtendedSizes(sizes map[string]uint64) Format {
	f.ExtendedSizes = maps.Clone(sizes)
	return f
}

// FieldsWidth is the number of bytes in front of every payload.
func (f Format) FieldsWidth() int {
	return f.IdentifierWidth + f.SizeWidth
}

// Padding returns the filler bytes that follow a payload of n bytes.
func (f Format) Padding(n uint64) uint64 {
	if f.Alignment <= 1 {
		return 0
	}
	a := uint64(f.Alignment)
	return (a - n%a) % a
}

// payloadLength applies the extended size table and the overhead to a raw
// size field.
func (f Format) payloadLength(id string, raw uint64) (uint64, bool) {
	if size, ok := f.ExtendedSizes[id]; ok {
		return size, true
	}

	if raw < f.Overhead {
		return 0, false
	}

	return raw - f.Overhead, true
}

type master struct {
	order  Endianness
	family Family
}

// masters is keyed by the first four bytes of a container, decoded as
// ISO-8859-1. Lower case "riff" is the start of the W64 master GUID.
var masters = map[string]master{
	"FORM": {BigEndian, FamilyIFF},
	"RIFX": {BigEndian, FamilyRIFF},
	"FFIR": {BigEndian, FamilyRIFF},
	"RF64": {LittleEndian, FamilyRF64},
	"riff": {LittleEndian, FamilyW64},
	"RIFF": {LittleEndian, FamilyRIFF},
}

// LookupMaster reports the byte order and family of a four byte master tag.
func LookupMaster(tag string) (Endianness, Family, bool) {
	m, ok := masters[tag]
	return m.order, m.family, ok
}
