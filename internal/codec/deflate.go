package codec

import (
	"bufio"
	"bytes"
	"compress/flate"
	"compress/zlib"
	"io"
)

// Servers that declare Content-Encoding: deflate emit either a
// zlib-wrapped stream (per the RFC) or a bare raw-deflate stream
// (common in the wild). The decoder is an explicit two-state machine:
// undetermined until the first read, then committed to one format for
// the rest of its life. The fallback from zlib to raw happens at most
// once, on the first read only; any failure after commit is final.

type deflateState int

const (
	deflateUndetermined deflateState = iota
	deflateZlib
	deflateRaw
)

type deflateDecoder struct {
	src   *bufio.Reader
	state deflateState
	fr    io.ReadCloser
	err   error // sticky
}

func newDeflateDecoder(src io.Reader) io.ReadCloser {
	br, ok := src.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(src)
	}
	return &deflateDecoder{src: br}
}

// commit resolves the zlib-vs-raw ambiguity. zlib.NewReader consumes
// and validates the two header bytes; when it rejects them, those same
// bytes are replayed through a fresh raw decoder, which becomes the
// committed format.
func (d *deflateDecoder) commit() error {
	hdr, err := d.src.Peek(2)
	if err != nil {
		if err == io.EOF && len(hdr) == 0 {
			// An empty stream decodes to an empty body.
			return io.EOF
		}
		return decodeErr("deflate", io.ErrUnexpectedEOF)
	}
	header := append([]byte(nil), hdr...)
	zr, err := zlib.NewReader(d.src)
	if err == nil {
		d.state, d.fr = deflateZlib, zr
		return nil
	}
	if err != zlib.ErrHeader {
		return decodeErr("deflate", err)
	}
	d.state = deflateRaw
	d.fr = flate.NewReader(io.MultiReader(bytes.NewReader(header), d.src))
	return nil
}

func (d *deflateDecoder) Read(p []byte) (int, error) {
	if d.err != nil {
		return 0, d.err
	}
	if d.state == deflateUndetermined {
		if err := d.commit(); err != nil {
			d.err = err
			return 0, err
		}
	}
	n, err := d.fr.Read(p)
	if err != nil {
		err = decodeErr("deflate", err)
		d.err = err
	}
	return n, err
}

func (d *deflateDecoder) Close() error {
	if d.fr != nil {
		return d.fr.Close()
	}
	return nil
}
