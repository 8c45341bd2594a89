package httpreader

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testModTime = time.Unix(0, 0)

func serveBody(body []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "f", testModTime, bytes.NewReader(body))
	}
}

func TestOpenAndReadViaRange(t *testing.T) {
	body := []byte("hello world, this is the response body")
	srv := httptest.NewServer(serveBody(body))
	defer srv.Close()

	// The test server listens on loopback, which the SSRF filter blocks
	// unless AllowPrivate is set.
	r, err := Open(context.Background(), srv.URL+"/f", Options{AllowPrivate: true})
	require.NoError(t, err)
	defer r.Close()

	size, ok := r.Size()
	require.True(t, ok)
	assert.Equal(t, int64(len(body)), size)

	buf := make([]byte, 5)
	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(buf[:n]))

	require.NoError(t, r.Seek(6))
	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "world", string(buf[:n]))
}

func TestOpenNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Open(context.Background(), srv.URL+"/missing", Options{AllowPrivate: true})
	assert.Error(t, err)
}

func TestReadEOFAtEnd(t *testing.T) {
	body := []byte("abc")
	srv := httptest.NewServer(serveBody(body))
	defer srv.Close()

	r, err := Open(context.Background(), srv.URL+"/f", Options{AllowPrivate: true})
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.Seek(3))
	buf := make([]byte, 4)
	n, err := r.Read(buf)
	assert.Equal(t, 0, n)
	assert.Equal(t, io.EOF, err)
}
