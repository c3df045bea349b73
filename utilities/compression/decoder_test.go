package compression_test

import (
	"bytes"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/dargueta/packrle"
	packrletest "github.com/dargueta/packrle/testing"
	c "github.com/dargueta/packrle/utilities/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type RawExpectedEntry struct {
	Name     string
	Raw      []byte
	Expected []byte
}

var basicDecodeTests = []RawExpectedEntry{
	{Name: "EmptyOk", Raw: []byte{}, Expected: []byte{}},
	{Name: "NothingRepeated", Raw: []byte{0, 0x91, 0x23, 0x4f, 0}, Expected: []byte{0, 0x91, 0x23, 0x4f, 0}},
	{Name: "RepeatedNotCompressed", Raw: []byte{0xff, 0xff, 0xff}, Expected: []byte{0xff, 0xff, 0xff}},
	{Name: "Basic", Raw: []byte{m, 0x05, 0xff}, Expected: []byte{0xff, 0xff, 0xff, 0xff, 0xff}},
	{Name: "BasicWithSurroundingData", Raw: []byte{0xe0, m, 0x04, 0xff, 0x09}, Expected: []byte{0xe0, 0xff, 0xff, 0xff, 0xff, 0x09}},
	{Name: "EscapedMarker", Raw: []byte{1, m, m, 2}, Expected: []byte{1, m, 2}},
	{Name: "MarkerRun", Raw: []byte{m, 3, m}, Expected: []byte{m, m, m}},
	{Name: "RunOfOne", Raw: []byte{m, 1, 'q'}, Expected: []byte{'q'}},
	{Name: "RunOfDigits", Raw: []byte{m, 4, '7', '1', '2'}, Expected: []byte("777712")},
	{Name: "ConsecutiveSame", Raw: []byte{m, 2, 0xff, m, 3, 0xff}, Expected: bytes.Repeat([]byte{0xff}, 5)},
	{Name: "TwoByteLength", Raw: []byte{m, 0x81, 0x00, 0}, Expected: make([]byte, 128)},
	{Name: "LengthContainsMarker", Raw: []byte{m, 0x81, 0x80, 0x00, 7}, Expected: bytes.Repeat([]byte{7}, 16384)},
	{Name: "MixedText", Raw: []byte{m, 3, 'a', m, 5, 'b', 'c', 'c', 'd'}, Expected: []byte("aaabbbbbccd")},
}

func TestDecode__Basic(t *testing.T) {
	for _, test := range basicDecodeTests {
		t.Run(test.Name, func(t *testing.T) {
			decoded, err := c.Unpack(test.Raw)
			require.NoError(t, err)
			assert.Equal(t, test.Expected, decoded)
		})
	}
}

type MalformedEntry struct {
	Name           string
	Raw            []byte
	ExpectedOffset int
	ExpectedState  c.DecoderState
	Truncated      bool
}

var malformedDecodeTests = []MalformedEntry{
	{"TruncatedAfterMarker", []byte{1, 2, m}, 3, c.StateAfterMarker, true},
	{"OnlyMarker", []byte{m}, 1, c.StateAfterMarker, true},
	{"TruncatedLength", []byte{1, m, 0x81}, 3, c.StateReadingLength, true},
	{"TruncatedLongLength", []byte{m, 0x81, 0x80, 0x80}, 4, c.StateReadingLength, true},
	{"MissingValue", []byte{m, 3}, 2, c.StateReadingValue, true},
	{"MissingValueAfterLongLength", []byte{m, 0x81, 0x00}, 3, c.StateReadingValue, true},
	{"ZeroLength", []byte{9, m, 0x00, 5}, 2, c.StateAfterMarker, false},
	{"LengthFieldTooLong", []byte{m, 0xff, 0xff, 0xff, 0xff, 0x01, 5}, 1, c.StateReadingLength, false},
	{"LengthOverDefaultMax", []byte{m, 0x88, 0x80, 0x80, 0x01, 'z'}, 1, c.StateReadingLength, false},
}

func TestDecode__Malformed(t *testing.T) {
	for _, test := range malformedDecodeTests {
		t.Run(test.Name, func(t *testing.T) {
			decoded, err := c.Unpack(test.Raw)
			require.Error(t, err)
			assert.Nil(t, decoded, "partial output returned on failure")
			assert.ErrorIs(t, err, packrle.ErrMalformedStream)

			var malformed *c.MalformedStreamError
			require.True(t, errors.As(err, &malformed), "wrong error type: %T", err)
			assert.Equal(t, test.ExpectedOffset, malformed.Offset, "wrong offset")
			assert.Equal(t, test.ExpectedState, malformed.State, "wrong state")
			assert.NotEmpty(t, malformed.Expected)
			assert.NotEmpty(t, malformed.Found)

			if test.Truncated {
				assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
			} else {
				assert.NotErrorIs(t, err, io.ErrUnexpectedEOF)
			}
		})
	}
}

func TestDecode__ErrorMessage(t *testing.T) {
	_, err := c.Unpack([]byte{m, 3})
	require.Error(t, err)
	assert.Equal(
		t,
		"Malformed RLE stream at offset 2 (reading value): expected run value, found end of stream",
		err.Error(),
	)
}

func TestDecode__DefaultMaxRunLengthAccepted(t *testing.T) {
	decoded, err := c.Unpack([]byte{m, 0x88, 0x80, 0x80, 0x00, 'z'})
	require.NoError(t, err)
	assert.Equal(t, c.DefaultMaxRunLength, len(decoded))
}

func TestDecode__CustomMaxRunLength(t *testing.T) {
	codec, err := c.NewCodec(c.Options{MaxRunLength: 100})
	require.NoError(t, err)

	_, err = codec.Decode([]byte{m, 100, 'a'})
	assert.NoError(t, err)

	_, err = codec.Decode([]byte{m, 101, 'a'})
	assert.ErrorIs(t, err, packrle.ErrMalformedStream)
}

func TestDecode__MaxDecodedSize(t *testing.T) {
	codec, err := c.NewCodec(c.Options{MaxDecodedSize: 10})
	require.NoError(t, err)

	decoded, err := codec.Decode([]byte{m, 10, 'a'})
	require.NoError(t, err)
	assert.Len(t, decoded, 10)

	decoded, err = codec.Decode([]byte{m, 11, 'a'})
	assert.ErrorIs(t, err, packrle.ErrMalformedStream)
	assert.Nil(t, decoded)

	decoded, err = codec.Decode([]byte{m, 9, 'a', 'b', 'c'})
	var malformed *c.MalformedStreamError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 4, malformed.Offset)
	assert.Nil(t, decoded)
}

func TestDecode__DoesNotAliasInput(t *testing.T) {
	data := []byte{1, 2, 3}
	decoded, err := c.Unpack(data)
	require.NoError(t, err)
	decoded[0] = 99
	assert.Equal(t, []byte{1, 2, 3}, data)
}

////////////////////////////////////////////////////////////////////////////////
// Round trips

func TestRoundTrip__CompletelyRandom(t *testing.T) {
	runRoundTripTestCase(t, packrletest.CreateRandomData(1852, t))
}

func TestRoundTrip__EntirelyNulls(t *testing.T) {
	runRoundTripTestCase(t, make([]byte, 571))
}

func TestRoundTrip__EntirelyNonNullRun(t *testing.T) {
	runRoundTripTestCase(t, bytes.Repeat([]byte{182}, 934))
}

func TestRoundTrip__EntirelyMarkers(t *testing.T) {
	runRoundTripTestCase(t, bytes.Repeat([]byte{m}, 1000))
}

func TestRoundTrip__Empty(t *testing.T) {
	runRoundTripTestCase(t, []byte{})
}

func TestRoundTrip__SingleBytes(t *testing.T) {
	for value := 0; value < 256; value++ {
		runRoundTripTestCase(t, []byte{byte(value)})
	}
}

func TestRoundTrip__EveryByteValue(t *testing.T) {
	data := make([]byte, 0, 256*4)
	for value := 0; value < 256; value++ {
		data = append(data, bytes.Repeat([]byte{byte(value)}, value%5+1)...)
	}
	runRoundTripTestCase(t, data)
}

func TestRoundTrip__RunHeavy(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		runRoundTripTestCase(t, packrletest.CreateRunHeavyData(5000, 300, seed))
	}
}

func TestRoundTrip__SmallMaxRunLength(t *testing.T) {
	codec, err := c.NewCodec(c.Options{MaxRunLength: c.MinRun})
	require.NoError(t, err)

	for seed := int64(0); seed < 5; seed++ {
		data := packrletest.CreateRunHeavyData(2000, 50, seed)
		decoded, err := codec.Decode(codec.Encode(data))
		require.NoError(t, err)
		assert.Equal(t, data, decoded)
	}
}

func TestRoundTrip__Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for worker := 0; worker < 8; worker++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			for i := int64(0); i < 10; i++ {
				data := packrletest.CreateRunHeavyData(1000, 40, seed*100+i)
				decoded, err := c.Unpack(c.Pack(data))
				assert.NoError(t, err)
				assert.Equal(t, data, decoded)
			}
		}(int64(worker))
	}
	wg.Wait()
}

////////////////////////////////////////////////////////////////////////////////
// Helper functions

func runRoundTripTestCase(t *testing.T, originalData []byte) {
	encoded := c.Pack(originalData)
	t.Logf("encoded %d to %d", len(originalData), len(encoded))

	decoded, err := c.Unpack(encoded)
	require.NoError(t, err, "unexpected error while decoding")
	if !bytes.Equal(originalData, decoded) {
		t.Error("decoded data doesn't match original data")
	}
}
