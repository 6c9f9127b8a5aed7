// package chunked bridges chunked transfer framing to a flat byte
// stream. The reader unwraps chunk-size/chunk-data framing and so
// satisfies the byte-source contract of the response body layer: the
// body above it only ever sees already-dechunked bytes. Malformed
// framing surfaces as ProtocolError.
package chunked

import (
	"bufio"
	"io"

	httperr "github.com/Scalr/urllib3/internal/errors"
)

// NewReader returns a reader that yields the dechunked payload of r.
// The terminal zero-length chunk and any trailer lines are consumed,
// so the underlying reader is left positioned after the body.
func NewReader(r io.Reader) io.Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &reader{br: br}
}

type reader struct {
	br    *bufio.Reader
	chunk io.Reader
	read  int64
	size  int64
	done  bool
}

func (c *reader) readLine() ([]byte, error) {
	var line []byte
	isPrefix := true
	for isPrefix {
		var part []byte
		var err error
		part, isPrefix, err = c.br.ReadLine()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}
		line = append(line, part...)
	}
	return line, nil
}

func (c *reader) readChunkHeader() (size uint64, err error) {
	line, err := c.readLine()
	if err != nil {
		return 0, &httperr.ProtocolError{Reason: "missing chunk size line", Err: err}
	}
	// Chunk extensions are tolerated and ignored.
	for i, b := range line {
		if b == ';' {
			line = line[:i]
			break
		}
	}
	if len(line) == 0 {
		return 0, &httperr.ProtocolError{Reason: "empty chunk size line"}
	}
	if len(line) > 16 {
		return 0, &httperr.ProtocolError{Reason: "chunk length too large"}
	}
	for _, b := range line {
		switch {
		case '0' <= b && b <= '9':
			b = b - '0'
		case 'a' <= b && b <= 'f':
			b = b - 'a' + 10
		case 'A' <= b && b <= 'F':
			b = b - 'A' + 10
		default:
			return 0, &httperr.ProtocolError{Reason: "invalid byte in chunk length"}
		}
		size <<= 4
		size |= uint64(b)
	}
	return size, nil
}

// readTrailer consumes trailer lines after the terminal chunk, up to
// and including the blank line. A source that ends right at the zero
// chunk is tolerated.
func (c *reader) readTrailer() error {
	for {
		line, err := c.readLine()
		if err != nil {
			return nil
		}
		if len(line) == 0 {
			return nil
		}
	}
}

func (c *reader) Read(p []byte) (n int, err error) {
	if c.done {
		return 0, io.EOF
	}
	if c.chunk == nil {
		size, err := c.readChunkHeader()
		if err != nil {
			return 0, err
		}
		if size == 0 {
			if err := c.readTrailer(); err != nil {
				return 0, err
			}
			c.done = true
			return 0, io.EOF
		}
		c.chunk = io.LimitReader(c.br, int64(size))
		c.size = int64(size)
		c.read = 0
	}
	n, err = c.chunk.Read(p)
	c.read += int64(n)
	if err == io.EOF {
		if c.read != c.size {
			return n, &httperr.ProtocolError{Reason: "truncated chunk body", Err: io.ErrUnexpectedEOF}
		}
		err = nil
		cr, e1 := c.br.ReadByte()
		lf, e2 := c.br.ReadByte()
		if e1 != nil || e2 != nil {
			return n, &httperr.ProtocolError{Reason: "missing chunk terminator", Err: io.ErrUnexpectedEOF}
		}
		if cr != '\r' || lf != '\n' {
			return n, &httperr.ProtocolError{Reason: "malformed chunk terminator"}
		}
		c.chunk = nil
	}
	return
}
