// SPDX-License-Identifier: EPL-2.0

// riffls lists the chunks of RIFF, RIFX, IFF and Wave64 files.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/ik5/riffwalk/internal/logger"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	var (
		configFile string
		s          settings
	)

	return &cli.Command{
		Name:      "riffls",
		Usage:     "List the chunks of RIFF, RIFX, IFF and Wave64 files",
		ArgsUsage: "<file> [file...]",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "YAML defaults file (default ~/.config/riffwalk/config.yaml)", Destination: &configFile},
			&cli.BoolFlag{Name: "mmap", Usage: "memory map input files", Destination: &s.mmap},
			&cli.Int64Flag{Name: "start", Usage: "offset of the container header inside the file", Destination: &s.start},
			&cli.IntFlag{Name: "limit", Usage: "stop after this many chunks (0 = no limit)", Destination: &s.limit},
			&cli.IntFlag{Name: "dump", Usage: "hex dump the first N payload bytes of each chunk", Destination: &s.dump},
			&cli.BoolFlag{Name: "json", Usage: "print a JSON report", Destination: &s.json},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error", Value: "warn", Destination: &s.logLevel},
			&cli.StringFlag{Name: "log-format", Usage: "text or json", Value: "text", Destination: &s.logFormat},
		},
		Action: func(_ context.Context, c *cli.Command) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			s.apply(c, cfg)

			level, err := logger.ParseLevel(s.logLevel)
			if err != nil {
				return err
			}
			format, err := logger.ParseFormat(s.logFormat)
			if err != nil {
				return err
			}
			log := logger.New(stderr, level, format)

			if c.NArg() == 0 {
				return errors.New("usage: riffls [options] <file> [file...]")
			}

			var (
				reports []report
				failed  int
			)
			for _, path := range c.Args().Slice() {
				r, err := inspect(path, s, log)
				if err != nil {
					log.Error("cannot list chunks", "path", path, "error", err)
					failed++
					continue
				}

				if s.json {
					reports = append(reports, r)
					continue
				}
				if err := writeText(stdout, r); err != nil {
					return err
				}
			}

			if s.json {
				if err := writeJSON(stdout, reports); err != nil {
					return err
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) could not be read", failed, c.NArg())
			}
			return nil
		},
	}
}
