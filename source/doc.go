// SPDX-License-Identifier: EPL-2.0

// Package source provides the random-access byte ranges the container
// parser reads from.
//
// Every backend implements the same Source contract: a cursor that Read
// advances, Seek in all three whence modes (positions past the end are
// legal and simply read nothing), ReadAt for random reads that leave the
// cursor alone, and a length fixed when the source is built.
//
// # Backends
//
//   - ByteSource: an in-memory block
//   - StreamSource: any io.ReadSeeker, length probed once up front
//   - FileSource: an open file handle
//   - MmapSource: a read-only memory mapping (golang.org/x/exp/mmap)
//
// Normalize picks one of them for a heterogeneous input:
//
//	src, err := source.Normalize("take.wav", source.WithMmap(true))
//	if err != nil {
//	    // errors.Is(err, source.ErrSourceUnavailable) when the file cannot be opened
//	}
//	defer src.Close()
//
// # Concurrency
//
// A Source has one cursor and is not safe for concurrent use. Open one
// Source per reader instead; memory mappings of the same file can coexist.
package source
