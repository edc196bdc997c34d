// SPDX-License-Identifier: EPL-2.0

// Package containertest builds container byte streams for tests.
package containertest

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// Builder assembles a container header followed by chunks. Sizes are
// computed when Bytes is called unless overridden.
type Builder struct {
	master string
	form   string
	order  binary.ByteOrder
	w64    bool
	chunks []chunk

	masterSize *uint64
}

type chunk struct {
	id      string
	payload []byte
	size    *uint64
	padding bool
}

// RIFF starts a little-endian RIFF container with the given form type.
func RIFF(form string) *Builder {
	return &Builder{master: "RIFF", form: form, order: binary.LittleEndian}
}

// RIFX starts a big-endian RIFF container.
func RIFX(form string) *Builder {
	return &Builder{master: "RIFX", form: form, order: binary.BigEndian}
}

// FORM starts a big-endian IFF container.
func FORM(form string) *Builder {
	return &Builder{master: "FORM", form: form, order: binary.BigEndian}
}

// Standard starts a container with any four byte master tag.
func Standard(master, form string, order binary.ByteOrder) *Builder {
	return &Builder{master: master, form: form, order: order}
}

// W64 starts a Wave64 container. form and every chunk id are GUID strings.
func W64(form string) *Builder {
	return &Builder{
		master: "66666972-912e-11cf-a5d6-28db04c10000",
		form:   form,
		order:  binary.LittleEndian,
		w64:    true,
	}
}

// Chunk appends a well formed chunk.
func (b *Builder) Chunk(id string, payload []byte) *Builder {
	b.chunks = append(b.chunks, chunk{id: id, payload: payload, padding: true})
	return b
}

// ChunkWithSize appends a chunk whose size field claims size instead of
// len(payload), to build truncated or lying input. No padding is written.
func (b *Builder) ChunkWithSize(id string, size uint64, payload []byte) *Builder {
	b.chunks = append(b.chunks, chunk{id: id, payload: payload, size: &size})
	return b
}

// MasterSize overrides the master size field.
func (b *Builder) MasterSize(size uint64) *Builder {
	b.masterSize = &size
	return b
}

// Bytes renders the container.
func (b *Builder) Bytes() []byte {
	body := new(bytes.Buffer)
	for _, c := range b.chunks {
		b.writeID(body, c.id)

		size := uint64(len(c.payload))
		if b.w64 {
			size += 24
		}
		if c.size != nil {
			size = *c.size
		}
		b.writeSize(body, size)
		body.Write(c.payload)

		if c.padding {
			body.Write(make([]byte, b.padding(len(c.payload))))
		}
	}

	out := new(bytes.Buffer)
	if b.w64 {
		b.writeID(out, b.master)
		size := uint64(16+8+16) + uint64(body.Len())
		if b.masterSize != nil {
			size = *b.masterSize
		}
		b.writeSize(out, size)
		b.writeID(out, b.form)
	} else {
		out.WriteString(b.master)
		size := uint64(4 + body.Len())
		if b.masterSize != nil {
			size = *b.masterSize
		}
		b.writeSize(out, size)
		out.WriteString(b.form)
	}
	out.Write(body.Bytes())

	return out.Bytes()
}

func (b *Builder) padding(n int) int {
	align := 2
	if b.w64 {
		align = 8
	}
	return (align - n%align) % align
}

func (b *Builder) writeID(buf *bytes.Buffer, id string) {
	if !b.w64 {
		buf.WriteString(id)
		return
	}
	g := GUID(id)
	buf.Write(g[:])
}

func (b *Builder) writeSize(buf *bytes.Buffer, size uint64) {
	if b.w64 {
		_ = binary.Write(buf, b.order, size)
		return
	}
	_ = binary.Write(buf, b.order, uint32(size))
}

// GUID returns the on-disk bytes of a GUID string: Data1, Data2 and Data3
// little-endian, the rest as written. It panics on malformed input.
func GUID(s string) [16]byte {
	u, err := uuid.Parse(s)
	if err != nil {
		panic(fmt.Sprintf("containertest: bad guid %q: %v", s, err))
	}

	b := [16]byte(u)
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	b[4], b[5] = b[5], b[4]
	b[6], b[7] = b[7], b[6]

	return b
}
