package compression

import (
	"fmt"

	"github.com/dargueta/packrle"
)

// Options configures a [Codec].
type Options struct {
	// MaxRunLength is the longest run a single token may describe. The encoder
	// splits longer runs into several tokens, and the decoder rejects tokens
	// claiming more. Zero selects [DefaultMaxRunLength].
	MaxRunLength int
	// MaxDecodedSize caps the total size of decoded output. Zero means no cap.
	MaxDecodedSize int
}

// Codec encodes and decodes the run/literal format. A Codec holds no mutable
// state, so a single instance may be used from multiple goroutines.
type Codec struct {
	maxRunLength   int
	maxDecodedSize int
}

var defaultCodec = &Codec{maxRunLength: DefaultMaxRunLength}

// DefaultCodec returns the codec used by [Pack] and [Unpack].
func DefaultCodec() *Codec {
	return defaultCodec
}

// NewCodec validates the options and returns a new [Codec].
func NewCodec(options Options) (*Codec, error) {
	maxRunLength := options.MaxRunLength
	if maxRunLength == 0 {
		maxRunLength = DefaultMaxRunLength
	}

	if maxRunLength < MinRun || maxRunLength > MaxEncodableRunLength {
		return nil, packrle.ErrInvalidArgument.WithMessage(
			fmt.Sprintf(
				"max run length must be in [%d, %d], got %d",
				MinRun,
				MaxEncodableRunLength,
				options.MaxRunLength,
			),
		)
	}
	if options.MaxDecodedSize < 0 {
		return nil, packrle.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("max decoded size can't be negative, got %d", options.MaxDecodedSize),
		)
	}

	return &Codec{
		maxRunLength:   maxRunLength,
		maxDecodedSize: options.MaxDecodedSize,
	}, nil
}

// MaxRunLength returns the longest run a single token produced or accepted by
// this codec may describe.
func (codec *Codec) MaxRunLength() int {
	return codec.maxRunLength
}

// Pack encodes data with the default codec. It never fails.
func Pack(data []byte) []byte {
	return defaultCodec.Encode(data)
}

// Unpack decodes data with the default codec. On failure the error is always a
// [*MalformedStreamError] and no output is returned.
func Unpack(data []byte) ([]byte, error) {
	return defaultCodec.Decode(data)
}
