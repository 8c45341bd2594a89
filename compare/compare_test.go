package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashm-dev/byteq/reader"
)

func TestFullEqualAndDifferent(t *testing.T) {
	res, err := Full(reader.NewMem("t", []byte("hello")), reader.NewMem("t", []byte("hello")), Options{})
	require.NoError(t, err)
	assert.Equal(t, Equal, res)

	res, err = Full(reader.NewMem("t", []byte("hello")), reader.NewMem("t", []byte("world")), Options{})
	require.NoError(t, err)
	assert.Equal(t, Different, res)
}

func TestFullEmptyBuffersAreEqual(t *testing.T) {
	res, err := Full(reader.NewMem("t", nil), reader.NewMem("t", nil), Options{})
	require.NoError(t, err)
	assert.Equal(t, Equal, res)
}

func TestFullDifferentLengthsAreDifferent(t *testing.T) {
	res, err := Full(reader.NewMem("t", []byte("short")), reader.NewMem("t", []byte("a bit longer")), Options{})
	require.NoError(t, err)
	assert.Equal(t, Different, res)
}

func TestFullSizePrecheckShortCircuitsOnLengthMismatch(t *testing.T) {
	res, err := Full(reader.NewMem("t", []byte("a")), reader.NewMem("t", []byte("ab")), Options{SizePrecheck: true})
	require.NoError(t, err)
	assert.Equal(t, Different, res)
}

func TestFullRespectsExactChunkBoundary(t *testing.T) {
	a := make([]byte, DefaultChunkSize)
	b := make([]byte, DefaultChunkSize)
	res, err := Full(reader.NewMem("t", a), reader.NewMem("t", b), Options{})
	require.NoError(t, err)
	assert.Equal(t, Equal, res)

	b[DefaultChunkSize-1] = 1
	res, err = Full(reader.NewMem("t", a), reader.NewMem("t", b), Options{})
	require.NoError(t, err)
	assert.Equal(t, Different, res)
}

func TestQuickNeverReturnsEqual(t *testing.T) {
	a := make([]byte, 4*DefaultChunkSize)
	b := make([]byte, 4*DefaultChunkSize)
	res, err := Quick(reader.NewMem("t", a), reader.NewMem("t", b), Options{})
	require.NoError(t, err)
	assert.Equal(t, SamplesMatch, res)
	assert.NotEqual(t, QuickResult(Equal), res)
}

func TestQuickDetectsDifferenceAtSampledOffset(t *testing.T) {
	a := make([]byte, 4*DefaultChunkSize)
	b := make([]byte, 4*DefaultChunkSize)
	b[0] = 1 // differs at the very first sampled offset
	res, err := Quick(reader.NewMem("t", a), reader.NewMem("t", b), Options{})
	require.NoError(t, err)
	assert.Equal(t, QuickDifferent, res)
}

func TestQuickLeavesReadersAtZeroOnSamplesMatch(t *testing.T) {
	a := make([]byte, 4*DefaultChunkSize)
	b := make([]byte, 4*DefaultChunkSize)
	ra := reader.NewMem("t", a)
	rb := reader.NewMem("t", b)

	res, err := Quick(ra, rb, Options{})
	require.NoError(t, err)
	require.Equal(t, SamplesMatch, res)

	full, err := Full(ra, rb, Options{})
	require.NoError(t, err)
	assert.Equal(t, Equal, full)
}

func TestQuickNotApplicableWithoutSeek(t *testing.T) {
	res, err := Quick(nonSeekable{reader.NewMem("t", []byte("x"))}, reader.NewMem("t", []byte("x")), Options{})
	require.NoError(t, err)
	assert.Equal(t, NotApplicable, res)
}

type nonSeekable struct {
	reader.Reader
}
