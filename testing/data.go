package testing

import (
	"bytes"
	"crypto/rand"
	mathrand "math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// CreateRandomData returns size bytes of random data. It is guaranteed to
// either return a valid slice or fail the test and abort.
func CreateRandomData(size int, t *testing.T) []byte {
	data := make([]byte, size)

	_, err := rand.Read(data)
	require.NoErrorf(t, err, "failed to initialize %d random bytes", size)
	return data
}

// CreateRunHeavyData returns data made of runs of random bytes with random
// lengths in [1, maxRunLength]. The same seed always gives the same data.
//
// Runs are allowed to abut runs of the same value, so the actual maximal runs
// in the output may be longer than maxRunLength.
func CreateRunHeavyData(size, maxRunLength int, seed int64) []byte {
	rng := mathrand.New(mathrand.NewSource(seed))
	data := make([]byte, 0, size)

	for len(data) < size {
		runLength := min(rng.Intn(maxRunLength)+1, size-len(data))
		data = append(data, bytes.Repeat([]byte{byte(rng.Intn(256))}, runLength)...)
	}
	return data
}

// CreateNoRunData returns size bytes where no byte equals its predecessor and
// none equals excluded. excluded is normally the codec's marker byte.
func CreateNoRunData(size int, excluded byte) []byte {
	data := make([]byte, size)
	value := byte(0)

	for i := range data {
		if value == excluded {
			value++
		}
		data[i] = value
		value++
	}
	return data
}
