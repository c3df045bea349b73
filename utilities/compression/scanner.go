package compression

import (
	"fmt"
	"io"
)

// DecoderState is a state of the decoding state machine.
type DecoderState int

const (
	// StateNormal expects a literal byte or a marker. It's the only state in
	// which the stream may end.
	StateNormal DecoderState = iota
	// StateAfterMarker expects a second marker or the first byte of a length.
	StateAfterMarker
	// StateReadingLength expects the remaining bytes of a length field.
	StateReadingLength
	// StateReadingValue expects the byte value of a run.
	StateReadingValue
)

func (state DecoderState) String() string {
	switch state {
	case StateNormal:
		return "normal"
	case StateAfterMarker:
		return "after marker"
	case StateReadingLength:
		return "reading length"
	case StateReadingValue:
		return "reading value"
	default:
		return fmt.Sprintf("DecoderState(%d)", int(state))
	}
}

// TokenKind identifies the kind of a [Token].
type TokenKind int

const (
	TokenLiteral TokenKind = iota
	TokenEscapedMarker
	TokenRun
)

func (kind TokenKind) String() string {
	switch kind {
	case TokenLiteral:
		return "literal"
	case TokenEscapedMarker:
		return "escaped-marker"
	case TokenRun:
		return "run"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(kind))
	}
}

// Token is a single unit of an encoded stream.
type Token struct {
	// Offset is the position of the token's first byte in the encoded stream.
	Offset int
	// Size is the number of encoded bytes the token occupies.
	Size int
	Kind TokenKind
	// Value is the byte the token expands to.
	Value byte
	// Length is the number of times Value appears in the decoded output. It's
	// always 1 for literals and escaped markers.
	Length int
}

// Scanner walks an encoded stream one token at a time, validating its
// structure as it goes.
type Scanner struct {
	data         []byte
	position     int
	maxRunLength int
}

// NewScanner creates a [Scanner] over data that rejects run tokens longer than
// maxRunLength.
func NewScanner(data []byte, maxRunLength int) *Scanner {
	return &Scanner{data: data, maxRunLength: maxRunLength}
}

// Offset returns the position of the next unread byte.
func (scanner *Scanner) Offset() int {
	return scanner.position
}

// Next returns the next token. At the clean end of the stream it returns
// [io.EOF]; any structural problem gives a [*MalformedStreamError].
func (scanner *Scanner) Next() (Token, error) {
	start := scanner.position

	currentByte, ok := scanner.readByte()
	if !ok {
		return Token{}, io.EOF
	}
	if currentByte != MarkerByte {
		return Token{Offset: start, Size: 1, Kind: TokenLiteral, Value: currentByte, Length: 1}, nil
	}

	currentByte, ok = scanner.readByte()
	if !ok {
		return Token{}, scanner.truncated(StateAfterMarker, "marker or run length")
	}
	if currentByte == MarkerByte {
		return Token{Offset: start, Size: 2, Kind: TokenEscapedMarker, Value: MarkerByte, Length: 1}, nil
	}
	if currentByte == 0 {
		return Token{}, &MalformedStreamError{
			Offset:   scanner.position - 1,
			State:    StateAfterMarker,
			Expected: "positive run length",
			Found:    "length 0",
		}
	}

	runLength, err := scanner.readLength(currentByte)
	if err != nil {
		return Token{}, err
	}

	value, ok := scanner.readByte()
	if !ok {
		return Token{}, scanner.truncated(StateReadingValue, "run value")
	}

	return Token{
		Offset: start,
		Size:   scanner.position - start,
		Kind:   TokenRun,
		Value:  value,
		Length: runLength,
	}, nil
}

// readLength finishes reading a length field whose first byte has already been
// consumed. The length is checked against the limit as soon as the field is
// complete, before anything is done with it.
func (scanner *Scanner) readLength(firstByte byte) (int, error) {
	fieldStart := scanner.position - 1
	runLength := int(firstByte & 0x7f)
	currentByte := firstByte

	for fieldSize := 1; currentByte&continuationBit != 0; fieldSize++ {
		if fieldSize == MaxLengthFieldSize {
			return 0, &MalformedStreamError{
				Offset:   fieldStart,
				State:    StateReadingLength,
				Expected: fmt.Sprintf("length field of at most %d bytes", MaxLengthFieldSize),
				Found:    "unterminated length field",
			}
		}

		var ok bool
		currentByte, ok = scanner.readByte()
		if !ok {
			return 0, scanner.truncated(StateReadingLength, "rest of run length")
		}
		runLength = runLength<<7 | int(currentByte&0x7f)
	}

	if runLength > scanner.maxRunLength {
		return 0, &MalformedStreamError{
			Offset:   fieldStart,
			State:    StateReadingLength,
			Expected: fmt.Sprintf("run length of at most %d", scanner.maxRunLength),
			Found:    fmt.Sprintf("length %d", runLength),
		}
	}
	return runLength, nil
}

func (scanner *Scanner) readByte() (byte, bool) {
	if scanner.position >= len(scanner.data) {
		return 0, false
	}
	b := scanner.data[scanner.position]
	scanner.position++
	return b, true
}

func (scanner *Scanner) truncated(state DecoderState, expected string) error {
	return &MalformedStreamError{
		Offset:   len(scanner.data),
		State:    state,
		Expected: expected,
		Found:    "end of stream",
		Cause:    io.ErrUnexpectedEOF,
	}
}
