// SPDX-License-Identifier: EPL-2.0

package container

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/charmap"
)

// Well known W64 GUIDs, in the form ReadChunk reports them.
const (
	GUIDRiff = "66666972-912E-11CF-A5D6-28DB04C10000"
	GUIDList = "7473696C-912F-11CF-A5D6-28DB04C10000"
	GUIDWave = "65766177-ACF3-11D3-8CD1-00C04F8EDB8A"
	GUIDFmt  = "20746D66-ACF3-11D3-8CD1-00C04F8EDB8A"
	GUIDFact = "74636166-ACF3-11D3-8CD1-00C04F8EDB8A"
	GUIDData = "61746164-ACF3-11D3-8CD1-00C04F8EDB8A"
)

func decodeText(b []byte) (string, error) {
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w", err)
	}
	return string(s), nil
}

// decodeGUID renders a GUID stored with its first three fields
// little-endian as the canonical upper case string.
func decodeGUID(b []byte) (string, error) {
	if len(b) != 16 {
		return "", fmt.Errorf("guid must be 16 bytes, got %d", len(b))
	}

	var raw [16]byte
	copy(raw[:], b)
	swapGUIDFields(&raw)

	u, err := uuid.FromBytes(raw[:])
	if err != nil {
		return "", fmt.Errorf("%w", err)
	}

	return strings.ToUpper(u.String()), nil
}

// EncodeGUID is the inverse of the GUID identifier decoding: it parses a
// canonical GUID string and returns its on-disk byte layout.
func EncodeGUID(s string) ([16]byte, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return [16]byte{}, fmt.Errorf("%w", err)
	}

	raw := [16]byte(u)
	swapGUIDFields(&raw)

	return raw, nil
}

// swapGUIDFields flips the byte order of Data1, Data2 and Data3.
func swapGUIDFields(b *[16]byte) {
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	b[4], b[5] = b[5], b[4]
	b[6], b[7] = b[7], b[6]
}

func (f Format) decodeIdentifier(b []byte) (string, error) {
	if f.Identifier == GUIDIdentifier {
		return decodeGUID(b)
	}
	return decodeText(b)
}
