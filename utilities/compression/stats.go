package compression

import (
	"github.com/boljen/go-bitmap"
)

// Stats summarizes how a raw input would be encoded.
type Stats struct {
	InputSize   int
	EncodedSize int
	// Runs is the number of maximal runs in the input, including runs of one.
	Runs int
	// EncodedRuns is the number of runs written as one or more run tokens.
	EncodedRuns int
	MarkerBytes int
	LongestRun  ByteRun
	// DistinctValues is the number of different byte values in the input.
	DistinctValues int
}

// Ratio returns EncodedSize / InputSize, or 1 for empty input.
func (stats Stats) Ratio() float64 {
	if stats.InputSize == 0 {
		return 1
	}
	return float64(stats.EncodedSize) / float64(stats.InputSize)
}

// Analyze computes [Stats] for data as the codec would encode it. The encoded
// size is exact, not an estimate.
func (codec *Codec) Analyze(data []byte) Stats {
	stats := Stats{InputSize: len(data)}
	seenValues := bitmap.New(256)
	grouper := NewRunLengthGrouper(data)

	for {
		run, err := grouper.GetNextRun()
		if err != nil {
			return stats
		}

		stats.Runs++
		if run.RunLength > stats.LongestRun.RunLength {
			stats.LongestRun = run
		}
		if !seenValues.Get(int(run.Byte)) {
			seenValues.Set(int(run.Byte), true)
			stats.DistinctValues++
		}

		size := codec.encodedRunSize(run)
		if run.Byte == MarkerByte {
			stats.MarkerBytes += run.RunLength
		}
		if run.RunLength >= MinRun || (run.Byte == MarkerByte && run.RunLength > 1) {
			stats.EncodedRuns++
		}
		stats.EncodedSize += size
	}
}

// Analyze computes [Stats] with the default codec.
func Analyze(data []byte) Stats {
	return defaultCodec.Analyze(data)
}

// encodedRunSize mirrors the splitting done by the encoder without producing
// any output.
func (codec *Codec) encodedRunSize(run ByteRun) int {
	threshold := MinRun
	if run.Byte == MarkerByte {
		threshold = 2
	}

	size := 0
	remaining := run.RunLength
	for remaining >= threshold {
		tokenLength := min(remaining, codec.maxRunLength)
		size += runTokenSize(tokenLength)
		remaining -= tokenLength
	}

	if run.Byte == MarkerByte {
		return size + 2*remaining
	}
	return size + remaining
}
