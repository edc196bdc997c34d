// SPDX-License-Identifier: EPL-2.0

package containertest

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// SinePCM16 generates frames of a 16-bit sine tone, interleaved across channels.
func SinePCM16(sampleRate, channels, frames int, frequency float64) []int {
	data := make([]int, frames*channels)
	for i := range frames {
		t := float64(i) / float64(sampleRate)
		v := int(math.Sin(2*math.Pi*frequency*t) * 32767)
		for ch := range channels {
			data[i*channels+ch] = v
		}
	}
	return data
}

func intBuffer(sampleRate, channels int, data []int) *goaudio.IntBuffer {
	return &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}
}

// WriteWAV encodes 16-bit PCM data into dir/name with go-audio/wav and
// returns the file path. The result is a RIFF/WAVE container.
func WriteWAV(t testing.TB, dir, name string, sampleRate, channels int, data []int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	if err := enc.Write(intBuffer(sampleRate, channels, data)); err != nil {
		t.Fatalf("encoding wav: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing wav encoder: %v", err)
	}

	return path
}

// WriteAIFF encodes 16-bit PCM data into dir/name with go-audio/aiff and
// returns the file path. The result is a FORM/AIFF container.
func WriteAIFF(t testing.TB, dir, name string, sampleRate, channels int, data []int) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()

	enc := aiff.NewEncoder(f, sampleRate, 16, channels)
	if err := enc.Write(intBuffer(sampleRate, channels, data)); err != nil {
		t.Fatalf("encoding aiff: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing aiff encoder: %v", err)
	}

	return path
}
