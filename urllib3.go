// package urllib3 implements the response-body layer of an HTTP
// client: it turns a raw, possibly chunked, possibly compressed byte
// stream into a logical body that can be materialized in full or
// consumed incrementally, with exact decoded-byte accounting.
//
// the package also re-exports some standard library types to avoid
// annoying imports.
package urllib3

import (
	"net/http"

	httperr "github.com/Scalr/urllib3/internal/errors"
	"github.com/Scalr/urllib3/internal/response"
)

type Header = http.Header

type (
	Response   = response.Response
	BodyStream = response.BodyStream
	Option     = response.Option
)

var (
	NewResponse       = response.New
	WithHeaders       = response.WithHeaders
	WithPreload       = response.WithPreload
	WithDecodeContent = response.WithDecodeContent
	WithRetries       = response.WithRetries
)

const DefaultChunkSize = response.DefaultChunkSize

type (
	DecodeError   = httperr.DecodeError
	ProtocolError = httperr.ProtocolError
	InvalidHeader = httperr.InvalidHeader
)

var ErrNoFileDescriptor = httperr.ErrNoFileDescriptor
