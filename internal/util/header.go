package util

import (
	"net/http"
	"strings"
)

// HeaderValue looks up a header value without assuming the map keys
// were canonicalized. http.Header.Get only matches canonical keys, but
// callers hand us maps built by other HTTP stacks where keys may be
// stored as e.g. "content-encoding".
func HeaderValue(h http.Header, name string) string {
	if v := h.Get(name); v != "" {
		return v
	}
	for k, vs := range h {
		if len(vs) > 0 && strings.EqualFold(k, name) {
			return vs[0]
		}
	}
	return ""
}
