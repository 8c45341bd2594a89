package byteqerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorFormatsCodeAndMessage(t *testing.T) {
	e := New(CodeNotFound, "missing file")
	assert.Equal(t, "not_found: missing file", e.Error())
	assert.Equal(t, CodeNotFound, e.Code())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	e := Wrap(CodeOpenFailed, cause, "open source")
	assert.ErrorContains(t, e, "connection refused")
	assert.Error(t, e.Unwrap())
}

func TestIsComparesByCode(t *testing.T) {
	a := New(CodeRead, "truncated")
	b := New(CodeRead, "different message, same code")
	c := New(CodePolicy, "archive bomb")

	assert.True(t, errors.Is(a, b))
	assert.False(t, errors.Is(a, c))
	assert.False(t, errors.Is(a, errors.New("plain error")))
}

func TestCodeStringUnknownDefault(t *testing.T) {
	assert.Equal(t, "unknown", CodeUnknown.String())
	assert.Equal(t, "not_ready", CodeNotReady.String())
}
