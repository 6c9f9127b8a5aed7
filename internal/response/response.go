// package response implements the body layer of an HTTP response: it
// bridges a raw byte source (socket wrapper, in-memory buffer, or a
// chunked-transfer bridge) into a logical body, undoing content
// compression per the Content-Encoding header and tracking exactly how
// many decoded bytes have been handed to the consumer.
package response

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/Scalr/urllib3/internal/codec"
	httperr "github.com/Scalr/urllib3/internal/errors"
	"github.com/Scalr/urllib3/internal/util"
)

// DefaultChunkSize is the bounded read size Stream uses when the
// caller does not pick one.
const DefaultChunkSize = 1 << 16

type config struct {
	headers http.Header
	preload bool
	decode  bool
	retries any
}

type Option func(*config)

// WithHeaders attaches the response headers. Only Content-Encoding is
// consulted, case-insensitively in both name and value.
func WithHeaders(h http.Header) Option {
	return func(c *config) { c.headers = h }
}

// WithPreload controls eager materialization. When true (the default)
// the full decoded body is read and cached at construction time and
// the source is closed before New returns.
func WithPreload(preload bool) Option {
	return func(c *config) { c.preload = preload }
}

// WithDecodeContent controls decompression. When false the body is
// passed through raw regardless of Content-Encoding.
func WithDecodeContent(decode bool) Option {
	return func(c *config) { c.decode = decode }
}

// WithRetries stores an opaque retry-policy value on the response. It
// is never interpreted here, only carried for the caller.
func WithRetries(retries any) Option {
	return func(c *config) { c.retries = retries }
}

// Response owns its source exclusively: once handed in, no other
// component may read from it, and it is closed when the body is
// exhausted or closed. Response is not safe for concurrent use.
type Response struct {
	headers       http.Header
	retries       any
	encoding      string
	decodeContent bool

	src     io.ReadCloser
	decoder io.ReadCloser // lazily built decode chain, nil means passthrough

	body     []byte
	cached   bool
	position int64
	closed   bool
}

// New builds a Response around body, which is one of:
//
//	nil                       an empty, already-closed body
//	[]byte, string            a materialized body, already closed
//	io.Reader, io.ReadCloser  a byte source owned by the response
//
// Any other type is rejected. The variant is dispatched exactly once,
// here.
func New(body any, opts ...Option) (*Response, error) {
	cfg := config{preload: true, decode: true}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.headers == nil {
		cfg.headers = http.Header{}
	}

	r := &Response{
		headers:       cfg.headers,
		retries:       cfg.retries,
		decodeContent: cfg.decode,
	}
	if enc := strings.ToLower(util.HeaderValue(cfg.headers, "Content-Encoding")); codec.Supported(enc) {
		r.encoding = enc
	}

	switch b := body.(type) {
	case nil:
		r.body, r.cached, r.closed = []byte{}, true, true
	case []byte:
		r.body, r.cached, r.closed = b, true, true
	case string:
		r.body, r.cached, r.closed = []byte(b), true, true
	case io.ReadCloser:
		r.src = b
	case io.Reader:
		r.src = io.NopCloser(b)
	default:
		return nil, fmt.Errorf("unsupported body type: %T", body)
	}

	if r.src != nil && cfg.preload {
		if _, err := r.readN(-1, r.decodeContent); err != nil {
			r.Close()
			return nil, err
		}
	}
	return r, nil
}

// reader returns the stream reads pull from: the decode chain when
// decoding applies, the raw source otherwise.
func (r *Response) reader(decode bool) io.Reader {
	if !decode || r.encoding == "" {
		return r.src
	}
	if r.decoder == nil {
		r.decoder, _ = codec.ForEncoding(r.encoding, r.src)
	}
	return r.decoder
}

func (r *Response) readN(amount int, decode bool) ([]byte, error) {
	if r.closed || r.src == nil {
		// Reading past exhaustion is not an error, it is the fixed
		// point: empty result, every time.
		return nil, nil
	}
	rd := r.reader(decode)

	if amount < 0 {
		data, err := io.ReadAll(rd)
		if err != nil {
			return nil, err
		}
		r.position += int64(len(data))
		r.Close()
		r.body, r.cached = data, true
		return data, nil
	}

	buf := make([]byte, amount)
	n, err := io.ReadFull(rd, buf)
	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		// Fewer decoded bytes than asked for means the source is
		// drained; any trailing decoder state was emitted on the way
		// to that EOF. Release the source now.
		r.Close()
	default:
		return nil, err
	}
	r.position += int64(n)
	return buf[:n], nil
}

// ReadN returns up to amount decoded bytes. A negative amount means
// "all remaining", which also caches the result so Data becomes O(1).
// The optional trailing argument overrides the construction-time
// decode flag for this call. At and after exhaustion ReadN returns an
// empty result with no error, idempotently.
func (r *Response) ReadN(amount int, decodeContent ...bool) ([]byte, error) {
	decode := r.decodeContent
	if len(decodeContent) > 0 {
		decode = decodeContent[0]
	}
	return r.readN(amount, decode)
}

// Data returns the full decoded body, materializing and caching it on
// first use. Subsequent calls return the same bytes.
func (r *Response) Data() ([]byte, error) {
	if r.cached {
		return r.body, nil
	}
	return r.readN(-1, r.decodeContent)
}

// Read makes the response a plain io.Reader so generic buffering
// layers (bufio.Reader and the like) can wrap it. It reports io.EOF
// exactly at exhaustion and on every call thereafter.
func (r *Response) Read(p []byte) (int, error) {
	if r.closed || r.src == nil {
		return 0, io.EOF
	}
	n, err := r.reader(r.decodeContent).Read(p)
	r.position += int64(n)
	if err == io.EOF {
		r.Close()
	}
	return n, err
}

// Tell returns the number of decoded bytes delivered to the consumer
// so far. It is monotonic and consistent mid-stream even when the raw
// byte count consumed from the source differs from the decoded count.
func (r *Response) Tell() int64 { return r.position }

// Close releases the source and decoder. It is idempotent, safe on
// cache-only bodies, and never fails: underlying close errors are
// swallowed after the closed flag is set.
func (r *Response) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.decoder != nil {
		_ = r.decoder.Close()
	}
	if r.src != nil {
		_ = r.src.Close()
	}
	return nil
}

func (r *Response) Closed() bool { return r.closed }

func (r *Response) Readable() bool { return !r.closed }

// Writable is always false; this is a read-only body abstraction.
func (r *Response) Writable() bool { return false }

// Fileno fails: no body built by this package is backed by an
// OS-level handle.
func (r *Response) Fileno() (uintptr, error) {
	return 0, httperr.ErrNoFileDescriptor
}

func (r *Response) Headers() http.Header { return r.headers }

// Header returns a single header value, matching the name
// case-insensitively even against non-canonical keys.
func (r *Response) Header(name string) string {
	return util.HeaderValue(r.headers, name)
}

// Retries returns the opaque retry-policy value stored at
// construction, verbatim.
func (r *Response) Retries() any { return r.retries }
