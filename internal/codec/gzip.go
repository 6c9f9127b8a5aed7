package codec

import (
	"compress/gzip"
	"io"
)

// gzipDecoder lazily wraps the source in a gzip reader on the first
// Read. The reader is left in multistream mode, so a body made of
// several concatenated gzip members decodes as one logical stream.
type gzipDecoder struct {
	src io.Reader
	zr  *gzip.Reader
	err error // sticky
}

func newGzipDecoder(src io.Reader) io.ReadCloser {
	return &gzipDecoder{src: src}
}

func (g *gzipDecoder) Read(p []byte) (int, error) {
	if g.err != nil {
		return 0, g.err
	}
	if g.zr == nil {
		zr, err := gzip.NewReader(g.src)
		if err != nil {
			if err == io.EOF {
				g.err = io.EOF
				return 0, io.EOF
			}
			g.err = decodeErr("gzip", err)
			return 0, g.err
		}
		g.zr = zr
	}
	n, err := g.zr.Read(p)
	if err != nil {
		err = decodeErr("gzip", err)
		g.err = err
	}
	return n, err
}

func (g *gzipDecoder) Close() error {
	if g.zr != nil {
		return g.zr.Close()
	}
	return nil
}
