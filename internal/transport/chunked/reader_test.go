package chunked_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	httperr "github.com/Scalr/urllib3/internal/errors"
	"github.com/Scalr/urllib3/internal/response"
	"github.com/Scalr/urllib3/internal/transport/chunked"
)

func frame(t *testing.T, parts ...[]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := chunked.NewWriter(&buf)
	for _, p := range parts {
		_, err := w.Write(p)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestRoundTrip(t *testing.T) {
	wire := frame(t, []byte("foo"), []byte("and"), []byte("more than sixteen bytes in one chunk"))
	got, err := io.ReadAll(chunked.NewReader(bytes.NewReader(wire)))
	require.NoError(t, err)
	require.Equal(t, "fooandmore than sixteen bytes in one chunk", string(got))
}

func TestExtensionsAndTrailer(t *testing.T) {
	wire := "3;ext=1\r\nfoo\r\n0\r\nX-Checksum: abc\r\n\r\n"
	got, err := io.ReadAll(chunked.NewReader(strings.NewReader(wire)))
	require.NoError(t, err)
	require.Equal(t, "foo", string(got))
}

func TestUppercaseSize(t *testing.T) {
	wire := "A\r\n0123456789\r\n0\r\n\r\n"
	got, err := io.ReadAll(chunked.NewReader(strings.NewReader(wire)))
	require.NoError(t, err)
	require.Equal(t, "0123456789", string(got))
}

func TestMalformed(t *testing.T) {
	cases := map[string]string{
		"BadSizeByte":       "zz\r\nfoo\r\n0\r\n\r\n",
		"EmptySizeLine":     "\r\nfoo\r\n0\r\n\r\n",
		"SizeTooLarge":      strings.Repeat("f", 17) + "\r\nfoo\r\n0\r\n\r\n",
		"TruncatedChunk":    "5\r\nab",
		"BadTerminator":     "3\r\nfooXX0\r\n\r\n",
		"MissingTerminator": "3\r\nfoo",
		"NoTerminalChunk":   "3\r\nfoo\r\n",
	}
	for name, wire := range cases {
		wire := wire
		t.Run(name, func(t *testing.T) {
			_, err := io.ReadAll(chunked.NewReader(strings.NewReader(wire)))
			var pe *httperr.ProtocolError
			require.ErrorAs(t, err, &pe)
		})
	}
}

// The bridge satisfies the byte-source contract of the response body:
// stacking dechunking below and content decoding above reproduces the
// payload.
func TestBridgeAsResponseSource(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, err := zw.Write([]byte("foo"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	wire := frame(t, gz.Bytes())
	r, err := response.New(chunked.NewReader(bytes.NewReader(wire)),
		response.WithHeaders(http.Header{"Content-Encoding": {"gzip"}}),
		response.WithPreload(false))
	require.NoError(t, err)

	data, err := r.Data()
	require.NoError(t, err)
	require.Equal(t, "foo", string(data))
}

func TestBridgeErrorPropagates(t *testing.T) {
	r, err := response.New(chunked.NewReader(strings.NewReader("zz\r\n")),
		response.WithPreload(false))
	require.NoError(t, err)

	_, err = r.ReadN(-1)
	var pe *httperr.ProtocolError
	require.ErrorAs(t, err, &pe)
}
