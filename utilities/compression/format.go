package compression

// MarkerByte introduces every run token and escaped marker in an encoded stream.
// A raw occurrence of this value in the input is never copied through as a
// literal.
const MarkerByte byte = 0x80

// MinRun is the shortest run of a non-marker byte that's written as a run
// token. Shorter runs are copied through literally.
const MinRun = 3

// MaxLengthFieldSize is the maximum number of bytes a run's length field can
// occupy.
const MaxLengthFieldSize = 4

// MaxEncodableRunLength is the largest run length that fits in a length field
// of [MaxLengthFieldSize] bytes.
const MaxEncodableRunLength = 1<<(7*MaxLengthFieldSize) - 1

// DefaultMaxRunLength is the largest run length a default [Codec] will write
// or accept in a single token.
const DefaultMaxRunLength = 1 << 24

// continuationBit is set on every byte of a length field except the last.
const continuationBit = 0x80

// lengthFieldSize returns the number of bytes needed to encode runLength. The
// length must be positive.
func lengthFieldSize(runLength int) int {
	size := 1
	for runLength >>= 7; runLength > 0; runLength >>= 7 {
		size++
	}
	return size
}

// appendLengthField appends runLength to buffer as a big-endian base-128
// quantity. Every byte but the last has the continuation bit set.
//
// Because the encoding is minimal, the first byte is never 0x80 (a group of
// zero bits with a continuation) and so can't be confused with [MarkerByte].
func appendLengthField(buffer []byte, runLength int) []byte {
	size := lengthFieldSize(runLength)
	for shift := 7 * (size - 1); shift > 0; shift -= 7 {
		buffer = append(buffer, byte(runLength>>shift)&0x7f|continuationBit)
	}
	return append(buffer, byte(runLength)&0x7f)
}

// runTokenSize gives the total number of bytes in a run token: the marker, the
// length field, and the value.
func runTokenSize(runLength int) int {
	return 2 + lengthFieldSize(runLength)
}
