package testing

import (
	"bytes"
	"io"
	"testing"

	"github.com/dargueta/packrle/utilities/compression"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"
)

// LoadPackedStream takes packed data and returns a stream to access the
// unpacked bytes.
//
//   - Writes to the stream do not affect `packedBytes`.
//   - While the stream can be written to, its size is fixed to `expectedSize`.
//     Attempting to write past the end of this buffer will trigger an error.
func LoadPackedStream(
	t *testing.T, packedBytes []byte, container compression.Container, expectedSize int,
) io.ReadWriteSeeker {
	rawBytes, err := compression.UnpackStreamToBytes(bytes.NewReader(packedBytes), container)
	require.NoError(t, err)

	require.Equal(t, expectedSize, len(rawBytes), "unpacked data is wrong size")
	return bytesextra.NewReadWriteSeeker(rawBytes)
}

// PackBytes packs data into a new byte slice, failing the test on error.
func PackBytes(t *testing.T, data []byte, container compression.Container) []byte {
	var buffer bytes.Buffer
	_, err := compression.PackStream(bytes.NewReader(data), &buffer, container)
	require.NoError(t, err, "error while packing")
	return buffer.Bytes()
}
