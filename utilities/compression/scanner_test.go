package compression_test

import (
	"io"
	"testing"

	c "github.com/dargueta/packrle/utilities/compression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanner__Tokens(t *testing.T) {
	data := []byte{'x', m, m, m, 0x81, 0x00, 'y', m, 3, 0}
	expected := []c.Token{
		{Offset: 0, Size: 1, Kind: c.TokenLiteral, Value: 'x', Length: 1},
		{Offset: 1, Size: 2, Kind: c.TokenEscapedMarker, Value: m, Length: 1},
		{Offset: 3, Size: 4, Kind: c.TokenRun, Value: 'y', Length: 128},
		{Offset: 7, Size: 3, Kind: c.TokenRun, Value: 0, Length: 3},
	}

	scanner := c.NewScanner(data, c.DefaultMaxRunLength)
	for i, expectedToken := range expected {
		token, err := scanner.Next()
		require.NoErrorf(t, err, "token %d", i)
		assert.Equalf(t, expectedToken, token, "token %d is wrong", i)
	}

	_, err := scanner.Next()
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, len(data), scanner.Offset())
}

func TestScanner__StopsAtError(t *testing.T) {
	scanner := c.NewScanner([]byte{'a', m}, c.DefaultMaxRunLength)

	token, err := scanner.Next()
	require.NoError(t, err)
	assert.Equal(t, c.TokenLiteral, token.Kind)

	_, err = scanner.Next()
	var malformed *c.MalformedStreamError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, c.StateAfterMarker, malformed.State)
}

func TestScanner__SizesCoverStream(t *testing.T) {
	data := c.Pack([]byte("aaaa\x80\x80\x80zzzzzzzzzzzzzzzzzzzz\x80q"))
	scanner := c.NewScanner(data, c.DefaultMaxRunLength)

	total := 0
	for {
		token, err := scanner.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, total, token.Offset, "tokens aren't contiguous")
		total += token.Size
	}
	assert.Equal(t, len(data), total)
}

func TestTokenKind__String(t *testing.T) {
	assert.Equal(t, "literal", c.TokenLiteral.String())
	assert.Equal(t, "escaped-marker", c.TokenEscapedMarker.String())
	assert.Equal(t, "run", c.TokenRun.String())
	assert.Equal(t, "TokenKind(9)", c.TokenKind(9).String())
	assert.Equal(t, "reading length", c.StateReadingLength.String())
}
