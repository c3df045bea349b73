// Package compression implements a byte-oriented run-length encoding.
//
// Input bytes are unrestricted; every value from 0 to 255 may appear. One byte
// value, [MarkerByte] (0x80), is reserved to introduce tokens in the encoded
// stream. An encoded stream is a sequence of three kinds of token:
//
//	literal          any byte other than 0x80, copied through
//	escaped marker   80 80              decodes to a single 0x80
//	run              80 LEN... VALUE    decodes to VALUE repeated LEN times
//
// LEN is a big-endian base-128 number of one to four bytes. Every byte except
// the last has its high bit set. Because the shortest encoding is always used,
// the first byte of LEN is never 0x80 and the decoder can tell a run apart from
// an escaped marker by looking at a single byte. For example:
//
//	a  a  a  b  b  b  b  b  c  c  d
//	80 03 61 80 05 62 63 63 64
//
// Runs of [MinRun] (3) or more bytes are written as run tokens; shorter runs
// are copied through. A run token takes at least three bytes, so a run of
// exactly three breaks even and anything longer shrinks. Runs of the marker
// itself are always written as run tokens, except a lone marker which is
// escaped by doubling it. This bounds the worst case: input with no runs of
// three and no marker bytes comes out unchanged, and input made entirely of
// marker bytes at most doubles.
//
// Runs longer than a codec's maximum run length are split across several
// tokens. The decoder rejects any token claiming more than its maximum, before
// allocating space for it, so corrupted or hostile input can't force an
// arbitrarily large allocation from a single token. [Options.MaxDecodedSize]
// caps the total.
//
// For storage on disk, [PackStream] can additionally wrap the encoded data in
// gzip or LZ4, in the same way that sparse disk images compress best when
// run-length encoded first and then passed through a general-purpose
// compressor.

package compression
