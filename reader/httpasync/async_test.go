package httpasync

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

	"github.com/ashm-dev/byteq/reader/httpreader"
)

func TestStartDrainsFullBodyViaPerform(t *testing.T) {
	body := []byte("the quick brown fox jumps over the lazy dog")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "f", time.Unix(0, 0), bytes.NewReader(body))
	}))
	defer srv.Close()

	// Loopback test server: the SSRF filter must be disabled to reach it.
	r, err := Start(context.Background(), srv.URL+"/f", httpreader.Options{AllowPrivate: true})
	require.NoError(t, err)
	defer r.Close()

	var got []byte
	buf := make([]byte, 8)
	deadline := time.Now().Add(5 * time.Second)
	for {
		n, perr := r.Perform(buf)
		got = append(got, buf[:n]...)
		if perr == io.EOF {
			break
		}
		if perr != nil {
			t.Fatalf("unexpected Perform error: %v", perr)
		}
		if n == 0 {
			if time.Now().After(deadline) {
				t.Fatal("timed out waiting for transfer to finish")
			}
			time.Sleep(time.Millisecond)
		}
	}

	assert.Equal(t, body, got)
	assert.True(t, r.Done())
	assert.NoError(t, r.Err())
}

func TestStartSurfacesTransferError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	r, err := Start(context.Background(), srv.URL+"/missing", httpreader.Options{AllowPrivate: true})
	require.NoError(t, err)
	defer r.Close()

	buf := make([]byte, 8)
	deadline := time.Now().Add(5 * time.Second)
	for {
		_, perr := r.Perform(buf)
		if perr != nil {
			assert.Error(t, perr)
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for failure to surface")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestGrowAppendDoublesCapacity(t *testing.T) {
	buf := make([]byte, 0, 4)
	buf = growAppend(buf, []byte("ab"))
	buf = growAppend(buf, []byte("cdefgh"))
	assert.Equal(t, "abcdefgh", string(buf))
}

