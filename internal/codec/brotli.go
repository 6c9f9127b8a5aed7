package codec

import (
	"io"

	"github.com/andybalholm/brotli"
)

type brotliDecoder struct {
	src io.Reader
	br  *brotli.Reader
	err error // sticky
}

func newBrotliDecoder(src io.Reader) io.ReadCloser {
	return &brotliDecoder{src: src}
}

func (b *brotliDecoder) Read(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	if b.br == nil {
		b.br = brotli.NewReader(b.src)
	}
	n, err := b.br.Read(p)
	if err != nil {
		err = decodeErr("br", err)
		b.err = err
	}
	return n, err
}

func (b *brotliDecoder) Close() error { return nil }
