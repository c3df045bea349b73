package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/dargueta/packrle"
	"github.com/dargueta/packrle/utilities/compression"
	"github.com/gocarina/gocsv"
	"github.com/hashicorp/go-multierror"
	"github.com/urfave/cli/v2"
)

const packedExtension = ".rle"

// unpackedExtension is added when unpacking a file whose name doesn't end in
// packedExtension.
const unpackedExtension = ".out"

type settings struct {
	unpack    bool
	output    string
	toStdout  bool
	force     bool
	container compression.Container
	codec     *compression.Codec
}

func loadSettings(ctx *cli.Context) (settings, error) {
	codec, err := compression.NewCodec(compression.Options{MaxRunLength: ctx.Int("max-run")})
	if err != nil {
		return settings{}, cli.Exit(err.Error(), exitFailure)
	}

	container, err := compression.ParseContainer(ctx.String("container"))
	if err != nil {
		return settings{}, cli.Exit(err.Error(), exitFailure)
	}

	return settings{
		unpack:    ctx.Bool("u"),
		output:    ctx.String("output"),
		toStdout:  ctx.Bool("stdout"),
		force:     ctx.Bool("force"),
		container: container,
		codec:     codec,
	}, nil
}

func packOrUnpack(ctx *cli.Context) error {
	if ctx.Bool("z") == ctx.Bool("u") {
		return cli.Exit("exactly one of -z (pack) or -u (unpack) is required", exitFailure)
	}

	inputs := ctx.Args().Slice()
	if len(inputs) == 0 {
		return cli.Exit("no input files given", exitFailure)
	}

	config, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	if config.output != "" && len(inputs) > 1 {
		return cli.Exit("-o can only be used with a single input file", exitFailure)
	}
	if config.output != "" && config.toStdout {
		return cli.Exit("-o and --stdout can't be used together", exitFailure)
	}

	logger := newConsoleLogger(ctx.App.ErrWriter)
	var result *multierror.Error

	for _, inputPath := range inputs {
		outputPath := config.output
		if outputPath == "" && !config.toStdout {
			outputPath = defaultOutputPath(inputPath, config.unpack)
		}

		inputSize, outputSize, err := processFile(ctx, config, inputPath, outputPath)
		if err != nil {
			logger.Errorf("%s: %s", inputPath, err.Error())
			result = multierror.Append(result, fmt.Errorf("%s: %w", inputPath, err))
			continue
		}

		if config.toStdout {
			outputPath = "<stdout>"
		}
		logger.Successf("%s -> %s (%d -> %d bytes)", inputPath, outputPath, inputSize, outputSize)
	}

	return exitCodeFor(result.ErrorOrNil())
}

// processFile packs or unpacks one file. Nothing is written if the input can't
// be read or decoded.
func processFile(
	ctx *cli.Context, config settings, inputPath, outputPath string,
) (int, int, error) {
	raw, err := readInput(inputPath)
	if err != nil {
		return 0, 0, err
	}

	var result bytes.Buffer
	if config.unpack {
		_, err = config.codec.UnpackStream(bytes.NewReader(raw), &result, config.container)
	} else {
		_, err = config.codec.PackStream(bytes.NewReader(raw), &result, config.container)
	}
	if err != nil {
		return 0, 0, err
	}

	if config.toStdout {
		_, err = ctx.App.Writer.Write(result.Bytes())
		if err != nil {
			return 0, 0, packrle.ErrIOFailed.Wrap(err)
		}
		return len(raw), result.Len(), nil
	}

	if err = writeOutput(outputPath, result.Bytes(), config.force); err != nil {
		return 0, 0, err
	}
	return len(raw), result.Len(), nil
}

// defaultOutputPath derives an output file name from the input's.
func defaultOutputPath(inputPath string, unpack bool) string {
	if !unpack {
		return inputPath + packedExtension
	}

	trimmed := strings.TrimSuffix(inputPath, packedExtension)
	if trimmed == inputPath || trimmed == "" || strings.HasSuffix(trimmed, "/") {
		return inputPath + unpackedExtension
	}
	return trimmed
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, packrle.ErrNotFound.Wrap(err)
		}
		return nil, packrle.ErrIOFailed.Wrap(err)
	}
	return data, nil
}

func writeOutput(path string, data []byte, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}

	file, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return packrle.ErrExists.WithMessage(
				fmt.Sprintf("%s already exists; use --force to overwrite it", path))
		}
		return packrle.ErrIOFailed.Wrap(err)
	}

	_, err = file.Write(data)
	closeErr := file.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		return packrle.ErrIOFailed.Wrap(err)
	}
	return nil
}

func exitCodeFor(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, packrle.ErrMalformedStream) {
		return cli.Exit(err.Error(), exitMalformed)
	}
	return cli.Exit(err.Error(), exitFailure)
}

////////////////////////////////////////////////////////////////////////////////
// tokens

type tokenRecord struct {
	Offset int    `csv:"offset"`
	Size   int    `csv:"size"`
	Kind   string `csv:"kind"`
	Value  string `csv:"value"`
	Length int    `csv:"length"`
}

func listTokens(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return cli.Exit("tokens takes exactly one packed file", exitFailure)
	}

	config, err := loadSettings(ctx)
	if err != nil {
		return err
	}

	packedFile, err := os.Open(ctx.Args().First())
	if err != nil {
		return exitCodeFor(packrle.ErrIOFailed.Wrap(err))
	}
	defer packedFile.Close()

	// Only the container is removed here; the RLE layer is walked token by
	// token so that a malformed stream still lists everything before the fault.
	encoded, err := compression.UnwrapContainer(packedFile, config.container)
	if err != nil {
		return exitCodeFor(err)
	}

	records := []tokenRecord{}
	scanner := compression.NewScanner(encoded, config.codec.MaxRunLength())
	var scanErr error
	for {
		token, err := scanner.Next()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				scanErr = err
			}
			break
		}
		records = append(records, tokenRecord{
			Offset: token.Offset,
			Size:   token.Size,
			Kind:   token.Kind.String(),
			Value:  fmt.Sprintf("0x%02x", token.Value),
			Length: token.Length,
		})
	}

	if err = gocsv.Marshal(records, ctx.App.Writer); err != nil {
		return exitCodeFor(packrle.ErrIOFailed.Wrap(err))
	}
	return exitCodeFor(scanErr)
}

////////////////////////////////////////////////////////////////////////////////
// stats

func showStats(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return cli.Exit("stats needs at least one file", exitFailure)
	}

	config, err := loadSettings(ctx)
	if err != nil {
		return err
	}

	var result *multierror.Error
	for _, path := range ctx.Args().Slice() {
		data, err := readInput(path)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", path, err))
			continue
		}

		stats := config.codec.Analyze(data)
		fmt.Fprintf(
			ctx.App.Writer,
			"%s: %d -> %d bytes (%.1f%%), %d runs, %d encoded, longest run %d x 0x%02x, "+
				"%d distinct values, %d marker bytes\n",
			path,
			stats.InputSize,
			stats.EncodedSize,
			100*stats.Ratio(),
			stats.Runs,
			stats.EncodedRuns,
			stats.LongestRun.RunLength,
			stats.LongestRun.Byte,
			stats.DistinctValues,
			stats.MarkerBytes,
		)
	}
	return exitCodeFor(result.ErrorOrNil())
}
