package claimmapper

import (
	"net/http"
	"sort"
	"strings"

	"google.golang.org/grpc/metadata"
)

// HeaderSet is a read-only, case-insensitive, multi-valued header lookup.
// Values are returned in arrival order.
type HeaderSet interface {
	Values(name string) []string
}

// HeaderSetFunc adapts a function into a HeaderSet
type HeaderSetFunc func(name string) []string

// Values satisfies the HeaderSet interface.
func (f HeaderSetFunc) Values(name string) []string {
	if f == nil {
		return nil
	}
	return f(name)
}

type httpHeaderSet http.Header

// HTTPHeaders exposes an http.Header as a HeaderSet. Keys stored in
// non-canonical form (for example literal map entries) are still found.
func HTTPHeaders(h http.Header) HeaderSet {
	return httpHeaderSet(h)
}

func (h httpHeaderSet) Values(name string) []string {
	if len(h) == 0 || name == "" {
		return nil
	}
	if values := http.Header(h).Values(name); len(values) > 0 {
		return values
	}
	return scanFold(h, name)
}

type metadataHeaderSet metadata.MD

// MetadataHeaders exposes gRPC metadata as a HeaderSet. Keys are normally
// lower-case; mixed-case keys from literal maps are still found.
func MetadataHeaders(md metadata.MD) HeaderSet {
	return metadataHeaderSet(md)
}

func (m metadataHeaderSet) Values(name string) []string {
	if len(m) == 0 || name == "" {
		return nil
	}
	if values := metadata.MD(m).Get(name); len(values) > 0 {
		return values
	}
	return scanFold(m, name)
}

// scanFold finds values stored under a key that differs from name only in
// case. Keys are visited in sorted order so repeated lookups agree.
func scanFold(h map[string][]string, name string) []string {
	keys := make([]string, 0, len(h))
	for key := range h {
		if strings.EqualFold(key, name) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		if values := h[key]; len(values) > 0 {
			return values
		}
	}
	return nil
}

// firstValue returns the first value of a header, if any
func firstValue(headers HeaderSet, name string) (string, bool) {
	if headers == nil || name == "" {
		return "", false
	}
	values := headers.Values(name)
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}
