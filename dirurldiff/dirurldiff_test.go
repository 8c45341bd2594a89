package dirurldiff

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashm-dev/byteq/diffresult"
	"github.com/ashm-dev/byteq/reader/httpreader"
)

func TestCompareDirURLs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "same.txt"), []byte("hello world"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "diff.txt"), []byte("local version"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "onlylocal.txt"), []byte("x"), 0o644))

	mux := http.NewServeMux()
	mux.HandleFunc("/same", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "11")
		w.Write([]byte("hello world"))
	})
	mux.HandleFunc("/diff", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "15")
		w.Write([]byte("remote  version"))
	})
	mux.HandleFunc("/onlyremote", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "1")
		w.Write([]byte("y"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	urlMap := map[string]string{
		"same.txt":       srv.URL + "/same",
		"diff.txt":       srv.URL + "/diff",
		"onlyremote.txt": srv.URL + "/onlyremote",
	}

	// The test server listens on loopback, which the SSRF filter blocks
	// unless AllowPrivate is set.
	res, err := Compare(context.Background(), dir, urlMap, Options{
		SizePrecheck: true,
		HTTP:         httpreader.Options{AllowPrivate: true},
	})
	require.NoError(t, err)

	assert.Equal(t, diffresult.SizeMismatch, res.Diff["diff.txt"])
	assert.ElementsMatch(t, []string{"onlylocal.txt"}, res.OnlyLeft)
	assert.ElementsMatch(t, []string{"onlyremote.txt"}, res.OnlyRight)
}
