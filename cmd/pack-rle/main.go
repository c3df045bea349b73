package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gookit/color"
	"github.com/urfave/cli/v2"
)

const (
	exitFailure   = 1
	exitMalformed = 2
)

func main() {
	app := newApp(os.Stdout, os.Stderr)

	err := app.Run(os.Args)
	if err == nil {
		return
	}

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, color.Red.Sprint(exitErr.Error()))
		os.Exit(exitErr.ExitCode())
	}
	log.Fatalf("fatal error: %s", err.Error())
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:  "pack-rle",
		Usage: "Pack or unpack files using run-length encoding",
		UsageText: "pack-rle [-z|-u] [-o|-out OUTPUT] [--container none|gzip|lz4] INPUT...\n" +
			"pack-rle tokens PACKED_FILE\n" +
			"pack-rle stats FILE...",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "z",
				Usage: "pack the input files",
			},
			&cli.BoolFlag{
				Name:  "u",
				Usage: "unpack the input files",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o", "out"},
				Usage: "write the result to `FILE`; defaults to the input name with " +
					packedExtension + " added (pack) or removed (unpack)",
			},
			&cli.BoolFlag{
				Name:  "stdout",
				Usage: "write the result to standard output instead of a file",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "overwrite existing output files",
			},
			&cli.StringFlag{
				Name:    "container",
				Usage:   "wrap packed data in `FORMAT`: none, gzip, or lz4",
				Value:   "none",
				EnvVars: []string{"PACKRLE_CONTAINER"},
			},
			&cli.IntFlag{
				Name:    "max-run",
				Usage:   "longest run a single token may describe (0 for the default)",
				EnvVars: []string{"PACKRLE_MAX_RUN"},
			},
		},
		Action: packOrUnpack,
		Commands: []*cli.Command{
			{
				Name:      "tokens",
				Usage:     "List the tokens of a packed file as CSV",
				ArgsUsage: "PACKED_FILE",
				Action:    listTokens,
			},
			{
				Name:      "stats",
				Usage:     "Show how well files would pack",
				ArgsUsage: "FILE...",
				Action:    showStats,
			},
		},
		// Exit codes are handled in main() so that tests can call Run() without
		// the process exiting.
		ExitErrHandler: func(*cli.Context, error) {},
	}
}
