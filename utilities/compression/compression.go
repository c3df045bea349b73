package compression

import (
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/dargueta/packrle"
	"github.com/pierrec/lz4/v4"
)

// Container is an optional general-purpose compression layer wrapped around
// RLE-encoded data when it's written to a file.
type Container int

const (
	ContainerNone Container = iota
	ContainerGzip
	ContainerLZ4
)

var containerNames = map[Container]string{
	ContainerNone: "none",
	ContainerGzip: "gzip",
	ContainerLZ4:  "lz4",
}

func (container Container) String() string {
	if name, ok := containerNames[container]; ok {
		return name
	}
	return fmt.Sprintf("Container(%d)", int(container))
}

// ParseContainer converts a container name ("none", "gzip", "lz4") to a
// [Container]. An empty name is treated as "none".
func ParseContainer(name string) (Container, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ContainerNone, nil
	}
	for container, containerName := range containerNames {
		if containerName == name {
			return container, nil
		}
	}
	return ContainerNone, packrle.ErrInvalidArgument.WithMessage(
		fmt.Sprintf("unknown container %q; expected none, gzip, or lz4", name),
	)
}

// PackStream reads all of input, encodes it, and writes the result to output,
// optionally wrapped in a container.
//
// The returned int64 gives the number of bytes written to the output stream,
// including any container framing. If an error occurred, the value is
// undefined and should not be used.
func (codec *Codec) PackStream(
	input io.Reader, output io.Writer, container Container,
) (int64, error) {
	raw, err := io.ReadAll(input)
	if err != nil {
		return 0, packrle.ErrIOFailed.Wrap(err)
	}

	counter := &countingWriter{Writer: output}
	writer, err := wrapWriter(counter, container)
	if err != nil {
		return 0, err
	}

	_, err = writer.Write(codec.Encode(raw))
	if err != nil {
		writer.Close()
		return counter.total, packrle.ErrIOFailed.Wrap(err)
	}
	if err = writer.Close(); err != nil {
		return counter.total, packrle.ErrIOFailed.Wrap(err)
	}
	return counter.total, nil
}

// UnpackStream reads all of input, removes the container if any, decodes it,
// and writes the original bytes to output.
//
// The returned int64 gives the number of bytes written to the output (i.e. the
// decoded size). If an error occurred, the value is undefined and should not
// be used. Nothing is written if the stream is malformed.
func (codec *Codec) UnpackStream(
	input io.Reader, output io.Writer, container Container,
) (int64, error) {
	decoded, err := codec.UnpackStreamToBytes(input, container)
	if err != nil {
		return 0, err
	}

	n, err := output.Write(decoded)
	if err != nil {
		return int64(n), packrle.ErrIOFailed.Wrap(err)
	}
	return int64(n), nil
}

// UnpackStreamToBytes is like [Codec.UnpackStream] but returns the decoded data
// instead of writing it to a stream.
func (codec *Codec) UnpackStreamToBytes(input io.Reader, container Container) ([]byte, error) {
	encoded, err := UnwrapContainer(input, container)
	if err != nil {
		return nil, err
	}
	return codec.Decode(encoded)
}

// UnwrapContainer reads all of input and removes the container, returning the
// RLE-encoded data without decoding it.
func UnwrapContainer(input io.Reader, container Container) ([]byte, error) {
	reader, err := wrapReader(input, container)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	encoded, err := io.ReadAll(reader)
	if err != nil {
		if container != ContainerNone {
			// Corrupted container data surfaces here rather than when the
			// reader is created.
			return nil, packrle.ErrMalformedStream.Wrap(err)
		}
		return nil, packrle.ErrIOFailed.Wrap(err)
	}
	return encoded, nil
}

type countingWriter struct {
	io.Writer
	total int64
}

func (writer *countingWriter) Write(p []byte) (int, error) {
	n, err := writer.Writer.Write(p)
	writer.total += int64(n)
	return n, err
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error {
	return nil
}

func wrapWriter(output io.Writer, container Container) (io.WriteCloser, error) {
	switch container {
	case ContainerNone:
		return nopWriteCloser{output}, nil
	case ContainerGzip:
		// The payload is already run-length encoded, so gzip's best level costs
		// little extra time.
		gzWriter, err := gzip.NewWriterLevel(output, gzip.BestCompression)
		if err != nil {
			return nil, err
		}
		return gzWriter, nil
	case ContainerLZ4:
		return lz4.NewWriter(output), nil
	default:
		return nil, packrle.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("unsupported container %s", container))
	}
}

func wrapReader(input io.Reader, container Container) (io.ReadCloser, error) {
	switch container {
	case ContainerNone:
		return io.NopCloser(input), nil
	case ContainerGzip:
		gzReader, err := gzip.NewReader(input)
		if err != nil {
			return nil, packrle.ErrMalformedStream.Wrap(err)
		}
		return gzReader, nil
	case ContainerLZ4:
		return io.NopCloser(lz4.NewReader(input)), nil
	default:
		return nil, packrle.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("unsupported container %s", container))
	}
}

// PackStream encodes with the default codec. See [Codec.PackStream].
func PackStream(input io.Reader, output io.Writer, container Container) (int64, error) {
	return defaultCodec.PackStream(input, output, container)
}

// UnpackStream decodes with the default codec. See [Codec.UnpackStream].
func UnpackStream(input io.Reader, output io.Writer, container Container) (int64, error) {
	return defaultCodec.UnpackStream(input, output, container)
}

// UnpackStreamToBytes decodes with the default codec. See
// [Codec.UnpackStreamToBytes].
func UnpackStreamToBytes(input io.Reader, container Container) ([]byte, error) {
	return defaultCodec.UnpackStreamToBytes(input, container)
}
