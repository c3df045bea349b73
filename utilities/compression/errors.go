package compression

import (
	"fmt"

	"github.com/dargueta/packrle"
	"github.com/hashicorp/go-multierror"
)

// MalformedStreamError describes where and how an encoded stream violates the
// format. It matches [packrle.ErrMalformedStream] with [errors.Is], and
// truncated streams additionally match [io.ErrUnexpectedEOF].
type MalformedStreamError struct {
	// Offset is the position in the encoded stream of the offending byte, or
	// the length of the stream if it ended too early.
	Offset int
	// State is the decoder state at the time of the failure.
	State DecoderState
	// Expected describes what the decoder was looking for.
	Expected string
	// Found describes what it got instead.
	Found string
	// Cause is an optional underlying error.
	Cause error
}

func (e *MalformedStreamError) Error() string {
	return fmt.Sprintf(
		"%s at offset %d (%s): expected %s, found %s",
		packrle.ErrMalformedStream.Error(),
		e.Offset,
		e.State,
		e.Expected,
		e.Found,
	)
}

func (e *MalformedStreamError) Unwrap() error {
	if e.Cause == nil {
		return packrle.ErrMalformedStream
	}
	return multierror.Append(packrle.ErrMalformedStream, e.Cause)
}
