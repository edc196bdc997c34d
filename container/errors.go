// SPDX-License-Identifier: EPL-2.0

package container

import "errors"

var (
	// ErrInvalidContainer means the leading bytes do not name a known
	// container family. It is fatal to the parse.
	ErrInvalidContainer = errors.New("not a recognized chunk container")

	// ErrEndOfSource means fewer bytes remain than the next read needs.
	// The walker turns it into a truncated termination instead of failing.
	ErrEndOfSource = errors.New("end of source")

	// ErrNotImplemented is returned for container paths that are declared
	// but not supported yet (RF64 ds64 size resolution).
	ErrNotImplemented = errors.New("not implemented")
)
