// SPDX-License-Identifier: EPL-2.0

// Package container parses chunk based binary containers: IFF (FORM),
// RIFF, RIFX, Wave64 and, as far as header recognition goes, RF64.
//
// All families share one shape, a master header followed by typed,
// length-prefixed, padded chunks. The differences between them are
// captured by a Format value that Classify derives once from the header;
// ReadChunk and the Walker are driven by its fields only.
//
//	| Family | ids        | sizes      | align | overhead |
//	|--------|------------|------------|-------|----------|
//	| IFF    | 4 byte tag | 32 bit BE  | 2     | 0        |
//	| RIFF   | 4 byte tag | 32 bit LE  | 2     | 0        |
//	| RIFX   | 4 byte tag | 32 bit BE  | 2     | 0        |
//	| W64    | GUID       | 64 bit LE  | 8     | 24       |
//
// # Walking a container
//
//	w, err := container.Parse(src)
//	if err != nil {
//	    // errors.Is(err, container.ErrInvalidContainer) for unknown input
//	}
//
//	for c := range w.Chunks() {
//	    fmt.Println(c.ID, c.Len())
//	}
//
//	if w.Termination() == container.Truncated {
//	    fmt.Println("stopped early:", w.Cause())
//	}
//
// Or collect everything at once:
//
//	c, err := w.Collect()
//
// # End of source
//
// The walk ends at the end the header declares, not at the end of the
// source, so containers embedded in larger files (see WithStart) stop in
// the right place. When the source runs out first, the chunk that does
// not fit ends the walk with a Truncated termination; chunks read before
// it are kept. A truncated size field cannot be trusted to find the next
// chunk, so the walker never skips ahead.
//
// # RF64
//
// RF64 headers are recognized, but resolving the 64 bit sizes stored in
// the ds64 chunk is not implemented and Classify fails with
// ErrNotImplemented. Format.ExtendedSizes is the hook that resolution
// will fill.
package container
