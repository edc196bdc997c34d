// SPDX-License-Identifier: EPL-2.0

package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"

	"github.com/goccy/go-json"

	"github.com/ik5/riffwalk"
	"github.com/ik5/riffwalk/container"
)

type chunkReport struct {
	ID           string `json:"id"`
	Start        int64  `json:"start"`
	End          int64  `json:"end"`
	DeclaredSize uint64 `json:"declared_size"`
	Length       int    `json:"length"`
	Padding      int64  `json:"padding"`
	Head         string `json:"head,omitempty"`
}

type report struct {
	Path         string        `json:"path"`
	Master       string        `json:"master"`
	Family       string        `json:"family"`
	Form         string        `json:"form"`
	ByteOrder    string        `json:"byte_order"`
	DeclaredSize uint64        `json:"declared_size"`
	End          int64         `json:"end"`
	Termination  string        `json:"termination"`
	Cause        string        `json:"cause,omitempty"`
	Chunks       []chunkReport `json:"chunks"`
}

func inspect(path string, s settings, log *slog.Logger) (report, error) {
	c, err := riffwalk.ReadAll(path,
		riffwalk.WithMmap(s.mmap),
		riffwalk.WithStart(s.start),
		riffwalk.WithLimit(s.limit),
		riffwalk.WithLogger(log.With("path", path)),
	)
	if err != nil {
		return report{}, err
	}

	return newReport(path, c, s.dump), nil
}

func newReport(path string, c *container.Container, dump int) report {
	r := report{
		Path:         path,
		Master:       c.Metadata.Master,
		Family:       string(c.Metadata.Family),
		Form:         c.Metadata.Form,
		ByteOrder:    c.Metadata.ByteOrder.String(),
		DeclaredSize: c.Metadata.DeclaredSize,
		End:          c.Metadata.End,
		Termination:  c.Termination.String(),
		Chunks:       make([]chunkReport, 0, len(c.Chunks)),
	}
	if c.Cause != nil {
		r.Cause = c.Cause.Error()
	}

	for _, ch := range c.Chunks {
		cr := chunkReport{
			ID:           ch.ID,
			Start:        ch.Start,
			End:          ch.End,
			DeclaredSize: ch.DeclaredSize,
			Length:       ch.Len(),
			Padding:      ch.Padding(c.Format),
		}
		if dump > 0 {
			cr.Head = hex.EncodeToString(ch.Payload[:min(dump, ch.Len())])
		}
		r.Chunks = append(r.Chunks, cr)
	}

	return r
}

func writeJSON(w io.Writer, reports []report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(reports); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

func writeText(w io.Writer, r report) error {
	_, err := fmt.Fprintf(w, "%s: %s/%s %s-endian, %d bytes declared, %s\n",
		r.Path, r.Family, r.Form, r.ByteOrder, r.DeclaredSize, r.Termination)
	if err != nil {
		return err
	}

	for _, ch := range r.Chunks {
		line := fmt.Sprintf("  %-36s %10d..%-10d %10d bytes", fmt.Sprintf("%q", ch.ID), ch.Start, ch.End, ch.Length)
		if ch.Head != "" {
			line += "  " + ch.Head
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if r.Cause != "" {
		if _, err := fmt.Fprintf(w, "  stopped early: %s\n", r.Cause); err != nil {
			return err
		}
	}

	return nil
}
