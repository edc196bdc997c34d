// SPDX-License-Identifier: EPL-2.0

package container

import (
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var canonicalGUID = regexp.MustCompile(`^[0-9A-F]{8}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{4}-[0-9A-F]{12}$`)

func TestDecodeGUID_Riff(t *testing.T) {
	t.Parallel()

	raw := []byte{
		'r', 'i', 'f', 'f', 0x2E, 0x91, 0xCF, 0x11,
		0xA5, 0xD6, 0x28, 0xDB, 0x04, 0xC1, 0x00, 0x00,
	}

	got, err := decodeGUID(raw)
	require.NoError(t, err)
	assert.Equal(t, GUIDRiff, got)
}

func TestDecodeGUID_WrongLength(t *testing.T) {
	t.Parallel()

	_, err := decodeGUID([]byte("riff"))
	assert.Error(t, err)
}

func TestEncodeGUID_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, s := range []string{GUIDRiff, GUIDList, GUIDWave, GUIDFmt, GUIDFact, GUIDData} {
		raw, err := EncodeGUID(s)
		require.NoError(t, err, s)

		got, err := decodeGUID(raw[:])
		require.NoError(t, err, s)
		assert.Equal(t, s, got)
	}

	// The first four bytes of the well known ids spell their FOURCC.
	raw, err := EncodeGUID(GUIDData)
	require.NoError(t, err)
	assert.Equal(t, "data", string(raw[:4]))
}

func TestDecodeGUID_AlwaysCanonicalUpper(t *testing.T) {
	t.Parallel()

	for range 64 {
		u := uuid.New()
		raw, err := EncodeGUID(u.String())
		require.NoError(t, err)

		got, err := decodeGUID(raw[:])
		require.NoError(t, err)
		assert.Regexp(t, canonicalGUID, got)
		assert.Equal(t, strings.ToUpper(u.String()), got)
	}
}

func TestEncodeGUID_Invalid(t *testing.T) {
	t.Parallel()

	_, err := EncodeGUID("not-a-guid")
	assert.Error(t, err)
}

func TestDecodeText_Latin1(t *testing.T) {
	t.Parallel()

	got, err := decodeText([]byte("fmt "))
	require.NoError(t, err)
	assert.Equal(t, "fmt ", got)

	// every byte maps to exactly one rune
	got, err = decodeText([]byte{'c', 'a', 'f', 0xE9})
	require.NoError(t, err)
	assert.Equal(t, "café", got)
	assert.Len(t, []rune(got), 4)
}
