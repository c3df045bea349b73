package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Decode reverses [Codec.Encode]. It fails with a [*MalformedStreamError] if
// the stream is truncated, contains a zero-length run, or claims a run longer
// than the codec's maximum. Limits are enforced before output is grown, and no
// partial output is returned on failure.
func (codec *Codec) Decode(data []byte) ([]byte, error) {
	output := make([]byte, 0, len(data))
	scanner := NewScanner(data, codec.maxRunLength)

	for {
		token, err := scanner.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return output, nil
			}
			return nil, err
		}

		if codec.maxDecodedSize > 0 && len(output)+token.Length > codec.maxDecodedSize {
			return nil, &MalformedStreamError{
				Offset:   token.Offset,
				State:    StateReadingValue,
				Expected: fmt.Sprintf("at most %d decoded bytes", codec.maxDecodedSize),
				Found:    fmt.Sprintf("%d decoded bytes", len(output)+token.Length),
			}
		}

		if token.Length == 1 {
			output = append(output, token.Value)
		} else {
			output = append(output, bytes.Repeat([]byte{token.Value}, token.Length)...)
		}
	}
}
