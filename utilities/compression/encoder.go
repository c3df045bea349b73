package compression

// Encode run-length encodes data. It's total over all inputs: empty input gives
// empty output, and the result always decodes back to data with any codec
// whose maximum run length is at least this one's.
//
// Input that contains no runs of [MinRun] or more bytes and no [MarkerByte] is
// returned unchanged (as a copy). Input consisting only of marker bytes at most
// doubles in size.
func (codec *Codec) Encode(data []byte) []byte {
	output := make([]byte, 0, len(data))
	grouper := NewRunLengthGrouper(data)

	for {
		run, err := grouper.GetNextRun()
		if err != nil {
			// The grouper works on an in-memory buffer, so the only error it
			// returns is EOF.
			return output
		}

		if run.Byte == MarkerByte {
			output = codec.appendMarkerRun(output, run.RunLength)
		} else {
			output = codec.appendRun(output, run)
		}
	}
}

// appendMarkerRun writes a run of marker bytes. A lone marker is escaped by
// doubling it; anything longer is always a run token, never a literal.
func (codec *Codec) appendMarkerRun(output []byte, runLength int) []byte {
	for runLength >= 2 {
		tokenLength := min(runLength, codec.maxRunLength)
		output = appendRunToken(output, MarkerByte, tokenLength)
		runLength -= tokenLength
	}

	if runLength == 1 {
		output = append(output, MarkerByte, MarkerByte)
	}
	return output
}

func (codec *Codec) appendRun(output []byte, run ByteRun) []byte {
	for run.RunLength >= MinRun {
		tokenLength := min(run.RunLength, codec.maxRunLength)
		output = appendRunToken(output, run.Byte, tokenLength)
		run.RunLength -= tokenLength
	}

	for ; run.RunLength > 0; run.RunLength-- {
		output = append(output, run.Byte)
	}
	return output
}

func appendRunToken(output []byte, value byte, runLength int) []byte {
	output = append(output, MarkerByte)
	output = appendLengthField(output, runLength)
	return append(output, value)
}
