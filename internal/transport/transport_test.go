package transport

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCachesByOptionsValue(t *testing.T) {
	defer Reset()

	a, err := Client(Options{Timeout: time.Second})
	require.NoError(t, err)
	b, err := Client(Options{Timeout: time.Second})
	require.NoError(t, err)
	assert.Same(t, a, b)

	c, err := Client(Options{Timeout: 2 * time.Second})
	require.NoError(t, err)
	assert.NotSame(t, a, c)
}

func TestClientRejectsUnparsableProxy(t *testing.T) {
	defer Reset()
	_, err := Client(Options{Proxy: "://not-a-url"})
	assert.Error(t, err)
}

func TestClientDisablesRedirectsByDefault(t *testing.T) {
	defer Reset()
	c, err := Client(Options{})
	require.NoError(t, err)
	require.NotNil(t, c.CheckRedirect)
	assert.Equal(t, http.ErrUseLastResponse, c.CheckRedirect(nil, nil))
}
