// SPDX-License-Identifier: EPL-2.0

// Package riffwalk reads chunk based binary containers: RIFF (WAV, AVI,
// WebP), RIFX, IFF (AIFF) and Sony Wave64.
//
// These formats share one shape: a master header naming the container
// family and its size, followed by typed, length-prefixed chunks padded to
// an alignment boundary. riffwalk classifies the header and walks the
// chunks, copying each payload out so it can be kept around.
//
// # Quick Start
//
// ReadAll takes a file path, a []byte, an *os.File or any io.Reader:
//
//	c, err := riffwalk.ReadAll("take.wav")
//	if err != nil {
//	    // errors.Is(err, container.ErrInvalidContainer) if it is not a container
//	    // errors.Is(err, source.ErrSourceUnavailable) if it could not be read
//	}
//
//	fmt.Println(c.Metadata.Family, c.Metadata.Form) // RIFF WAVE
//	for _, ch := range c.Chunks {
//	    fmt.Println(ch.ID, ch.Len())
//	}
//
//	if c.Truncated() {
//	    fmt.Println("file ends early:", c.Cause)
//	}
//
// # Lazy Iteration
//
// Open returns a Reader that reads one chunk at a time:
//
//	r, err := riffwalk.Open("big.w64", riffwalk.WithMmap(true))
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	for ch := range r.Chunks() {
//	    if ch.ID == container.GUIDData {
//	        break
//	    }
//	}
//
// Iteration is one shot: it moves the cursor of the underlying source.
//
// # Options
//
//   - WithMmap: memory map path inputs
//   - WithStart: parse a container embedded at an offset
//   - WithLimit: stop after n chunks
//   - WithLogger: log header, chunk and termination events to a *slog.Logger
//
// See the container and source subpackages for the engine and the byte
// backends.
package riffwalk
