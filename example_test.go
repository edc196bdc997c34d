// SPDX-License-Identifier: EPL-2.0

package riffwalk_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ik5/riffwalk"
	"github.com/ik5/riffwalk/container"
)

// minimalWAV builds a 44 byte header WAV with the given 16-bit samples.
func minimalWAV(sampleRate int, samples []int16) []byte {
	buf := new(bytes.Buffer)
	dataSize := uint32(len(samples) * 2)

	buf.WriteString("RIFF")
	_ = binary.Write(buf, binary.LittleEndian, 36+dataSize)
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	_ = binary.Write(buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(buf, binary.LittleEndian, uint16(1)) // PCM
	_ = binary.Write(buf, binary.LittleEndian, uint16(1)) // mono
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(buf, binary.LittleEndian, uint32(sampleRate*2))
	_ = binary.Write(buf, binary.LittleEndian, uint16(2))
	_ = binary.Write(buf, binary.LittleEndian, uint16(16))

	buf.WriteString("data")
	_ = binary.Write(buf, binary.LittleEndian, dataSize)
	_ = binary.Write(buf, binary.LittleEndian, samples)

	return buf.Bytes()
}

// Example_readAll lists every chunk of an in-memory WAV file.
func Example_readAll() {
	c, err := riffwalk.ReadAll(minimalWAV(8000, []int16{100, -100, 200}))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%s/%s %s-endian\n", c.Metadata.Family, c.Metadata.Form, c.Metadata.ByteOrder)
	for _, ch := range c.Chunks {
		fmt.Printf("%s: %d bytes at %d\n", ch.ID, ch.Len(), ch.Start)
	}
	// Output:
	// RIFF/WAVE little-endian
	// fmt : 16 bytes at 12
	// data: 6 bytes at 36
}

// Example_open reads a file lazily through a memory mapping.
func Example_open() {
	dir, err := os.MkdirTemp("", "riffwalk")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "tone.wav")
	if err := os.WriteFile(path, minimalWAV(16000, make([]int16, 160)), 0o644); err != nil {
		fmt.Println(err)
		return
	}

	r, err := riffwalk.Open(path, riffwalk.WithMmap(true))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer r.Close()

	for ch := range r.Chunks() {
		if ch.ID == "data" {
			fmt.Printf("data chunk: %d bytes\n", ch.Len())
			break
		}
	}
	// Output:
	// data chunk: 320 bytes
}

// Example_errorHandling tells format errors apart from truncated input.
func Example_errorHandling() {
	_, err := riffwalk.ReadAll([]byte("ID3\x04 not a chunk container"))
	if errors.Is(err, container.ErrInvalidContainer) {
		fmt.Println("not a container")
	}

	wav := minimalWAV(8000, make([]int16, 100))
	c, err := riffwalk.ReadAll(wav[:len(wav)-10])
	if err == nil && c.Truncated() {
		fmt.Printf("truncated after %d chunk(s)\n", len(c.Chunks))
	}
	// Output:
	// not a container
	// truncated after 1 chunk(s)
}
