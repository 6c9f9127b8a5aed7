package codec

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

type zstdDecoder struct {
	src io.Reader
	zr  *zstd.Decoder
	err error // sticky
}

func newZstdDecoder(src io.Reader) io.ReadCloser {
	return &zstdDecoder{src: src}
}

func (z *zstdDecoder) Read(p []byte) (int, error) {
	if z.err != nil {
		return 0, z.err
	}
	if z.zr == nil {
		zr, err := zstd.NewReader(z.src)
		if err != nil {
			z.err = decodeErr("zstd", err)
			return 0, z.err
		}
		z.zr = zr
	}
	n, err := z.zr.Read(p)
	if err != nil {
		err = decodeErr("zstd", err)
		z.err = err
	}
	return n, err
}

func (z *zstdDecoder) Close() error {
	if z.zr != nil {
		z.zr.Close()
	}
	return nil
}
