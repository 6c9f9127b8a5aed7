// package codec implements the content decoders applied to response
// bodies, selected from the Content-Encoding header. Decoders are
// pull-model: they wrap the raw source and decompress on demand, so a
// bounded read from the body translates into bounded reads from the
// wire. Initialization is lazy, on the first Read, which keeps
// construction from ever touching the source.
package codec

import (
	"errors"
	"io"
	"strings"

	httperr "github.com/Scalr/urllib3/internal/errors"
)

type builder func(io.Reader) io.ReadCloser

var builders = map[string]builder{
	"deflate": newDeflateDecoder,
	"gzip":    newGzipDecoder,
	"br":      newBrotliDecoder,
	"zstd":    newZstdDecoder,
}

// Supported reports whether encoding names a Content-Encoding this
// package can decode. Comma-separated chains count as supported when
// every member is. Matching is case-insensitive.
func Supported(encoding string) bool {
	encs := splitEncodings(encoding)
	if len(encs) == 0 {
		return false
	}
	for _, e := range encs {
		if _, ok := builders[e]; !ok {
			return false
		}
	}
	return true
}

// ForEncoding wraps src with the decoder stack for encoding. For a
// chain like "gzip, br" the encodings were applied left to right, so
// decoders stack in reverse: the right-most encoding is undone closest
// to the wire. Returns false when the encoding is not supported.
func ForEncoding(encoding string, src io.Reader) (io.ReadCloser, bool) {
	if !Supported(encoding) {
		return nil, false
	}
	encs := splitEncodings(encoding)
	var closers []io.Closer
	r := src
	for i := len(encs) - 1; i >= 0; i-- {
		d := builders[encs[i]](r)
		closers = append(closers, d)
		r = d
	}
	return &stack{Reader: r, closers: closers}, true
}

// stack keeps every decoder in a chain closable. Closing only the
// outermost decoder would leak the resources of inner ones (zstd in
// particular holds worker goroutines).
type stack struct {
	io.Reader
	closers []io.Closer
}

func (s *stack) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func splitEncodings(encoding string) []string {
	var encs []string
	for _, e := range strings.Split(encoding, ",") {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			continue
		}
		encs = append(encs, e)
	}
	return encs
}

// decodeErr maps a decoder failure onto DecodeError. Clean end of
// stream passes through, and errors already wrapped by an inner
// decoder of a chain are not wrapped twice.
func decodeErr(encoding string, err error) error {
	if err == nil || err == io.EOF {
		return err
	}
	var de *httperr.DecodeError
	if errors.As(err, &de) {
		return err
	}
	return &httperr.DecodeError{Encoding: encoding, Err: err}
}
