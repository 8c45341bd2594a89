// Package httpreader implements the blocking HTTP(S) Reader (C3): a HEAD
// probe to discover size and Range support, followed by per-Read Range
// GETs reusing a single shared client so DNS, connection, and TLS state
// are amortised across reads.
package httpreader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/ashm-dev/byteq/byteqerr"
	"github.com/ashm-dev/byteq/internal/transport"
)

// Options configures one HTTP reader.
type Options struct {
	Headers         map[string]string
	Timeout         time.Duration
	FollowRedirects bool
	VerifySSL       bool
	AllowPrivate    bool
	Proxy           string
}

// Reader is a Reader+Seeker over an HTTP(S) resource.
type Reader struct {
	url    string
	opts   Options
	client *http.Client

	size        int64
	sizeKnown   bool
	rangeOK     bool
	rangeProbed bool
	fullConsume bool // server ignored Range and sent a 200; one read only
	pos         int64
	closed      bool
}

// Open issues the discovery HEAD request and returns a ready Reader.
func Open(ctx context.Context, rawURL string, opts Options) (*Reader, error) {
	for name, value := range opts.Headers {
		if strings.ContainsAny(value, "\r\n") || strings.ContainsAny(name, "\r\n") {
			return nil, byteqerr.New(byteqerr.CodePolicy, "header contains CR/LF: "+name)
		}
	}

	client, err := transport.Client(transport.Options{
		Timeout:         opts.Timeout,
		VerifySSL:       opts.VerifySSL,
		AllowPrivate:    opts.AllowPrivate,
		Proxy:           opts.Proxy,
		FollowRedirects: opts.FollowRedirects,
	})
	if err != nil {
		return nil, byteqerr.Wrap(byteqerr.CodeOpenFailed, err, "build http client")
	}

	r := &Reader{url: rawURL, opts: opts, client: client}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return nil, byteqerr.Wrap(byteqerr.CodeOpenFailed, err, "build HEAD request")
	}
	applyHeaders(req, opts.Headers)

	var resp *http.Response
	err = retry.Do(
		func() error {
			var doErr error
			resp, doErr = client.Do(req)
			return doErr
		},
		retry.Attempts(3),
		retry.Delay(50*time.Millisecond),
		retry.RetryIf(func(err error) bool { return err != nil }),
	)
	if err != nil {
		return nil, byteqerr.Wrap(byteqerr.CodeOpenFailed, err, "HEAD "+rawURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return nil, byteqerr.New(byteqerr.CodeNotFound, fmt.Sprintf("HEAD %s: %s", rawURL, resp.Status))
	}
	if resp.StatusCode >= 400 {
		return nil, byteqerr.New(byteqerr.CodeOpenFailed, fmt.Sprintf("HEAD %s: %s", rawURL, resp.Status))
	}

	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if n, perr := strconv.ParseInt(cl, 10, 64); perr == nil {
			r.size = n
			r.sizeKnown = true
		}
	}
	r.rangeOK = strings.EqualFold(resp.Header.Get("Accept-Ranges"), "bytes")
	r.rangeProbed = true

	return r, nil
}

// Read satisfies the next len(p) bytes of the resource via a Range GET
// (or the single full-body read when the server is range-incapable).
func (r *Reader) Read(p []byte) (int, error) {
	if r.closed {
		return 0, byteqerr.New(byteqerr.CodeRead, "read after close")
	}
	if len(p) == 0 {
		return 0, nil
	}
	if r.sizeKnown && r.pos >= r.size {
		return 0, io.EOF
	}
	if r.fullConsume {
		return 0, byteqerr.New(byteqerr.CodeSizeAnomaly, "server ignored Range; only one read permitted")
	}

	req, err := http.NewRequest(http.MethodGet, r.url, nil)
	if err != nil {
		return 0, byteqerr.Wrap(byteqerr.CodeRead, err, "build GET request")
	}
	applyHeaders(req, r.opts.Headers)

	end := r.pos + int64(len(p)) - 1
	req.Header.Set("Range", fmt.Sprintf("bytes=%d-%d", r.pos, end))

	resp, err := r.client.Do(req)
	if err != nil {
		return 0, byteqerr.Wrap(byteqerr.CodeRead, err, "GET "+r.url)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusPartialContent:
		return r.readBody(resp, p)
	case http.StatusOK:
		if r.pos != 0 {
			return 0, byteqerr.New(byteqerr.CodeSizeAnomaly, "server sent 200 for a non-zero-offset range request")
		}
		r.rangeOK = false
		r.fullConsume = true
		n, rerr := r.readBody(resp, p)
		if rerr != nil && rerr != io.EOF {
			return n, rerr
		}
		return n, nil
	case http.StatusRequestedRangeNotSatisfiable:
		return 0, io.EOF
	default:
		return 0, byteqerr.New(byteqerr.CodeRead, fmt.Sprintf("GET %s: %s", r.url, resp.Status))
	}
}

// readBody copies resp.Body into p, detecting a server that sent more
// bytes than requested (over-read, e.g. it ignored the Range header).
func (r *Reader) readBody(resp *http.Response, p []byte) (int, error) {
	lr := io.LimitReader(resp.Body, int64(len(p))+1)
	n, err := io.ReadFull(lr, p)
	switch {
	case err == io.ErrUnexpectedEOF, err == io.EOF:
		// short read: fine, genuine end of body
	case err != nil:
		return n, byteqerr.Wrap(byteqerr.CodeRead, err, "read body")
	default:
		// p was filled exactly; check for a trailing byte indicating over-read
		var extra [1]byte
		if m, _ := resp.Body.Read(extra[:]); m > 0 {
			return 0, byteqerr.New(byteqerr.CodeSizeAnomaly, "server over-read past requested range")
		}
	}
	r.pos += int64(n)
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Size reports the Content-Length discovered at Open time.
func (r *Reader) Size() (int64, bool) { return r.size, r.sizeKnown }

// Seek repositions the reader; only valid when the server advertised
// Range support.
func (r *Reader) Seek(offset int64) error {
	if !r.rangeOK {
		return byteqerr.New(byteqerr.CodePolicy, "seek unsupported: server does not advertise byte ranges")
	}
	if offset < 0 || (r.sizeKnown && offset > r.size) {
		return byteqerr.New(byteqerr.CodePolicy, "seek out of range")
	}
	r.pos = offset
	return nil
}

// SourceName returns the resource URL, for diagnostics.
func (r *Reader) SourceName() string { return r.url }

// Close marks the reader unusable; the underlying client is shared and
// outlives any one Reader.
func (r *Reader) Close() error {
	r.closed = true
	return nil
}

func applyHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}
