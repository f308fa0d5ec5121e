// Package message implements the HTTP/1.1 message model used by shape-serve:
// request and response values, ordered headers, request-target URLs, and
// their wire-format encodings.
//
// # Thread Safety
//
// Parsing and marshalling functions are safe for concurrent use by multiple
// goroutines; each call works on its own data with no shared mutable state.
// Individual Request and Response values are not synchronized and are meant
// to be owned by a single connection.
//
// # Framing
//
// The codec is deliberately length-unaware: a request body is whatever bytes
// follow the first blank line in the captured read, and responses carry no
// automatic Content-Length. Chunked transfer encoding and keep-alive
// connections are out of scope.
package message

import (
	"strconv"
	"strings"
)

// Method is an HTTP request method.
type Method string

// Supported request methods.
const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

// ParseMethod validates a method token from the request line.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodGet, MethodPost:
		return Method(s), nil
	}
	return "", newParseError("unsupported method "+strconv.Quote(s), 1)
}

// Status is an HTTP response status code.
type Status int

// Supported response statuses.
const (
	StatusOK                  Status = 200
	StatusSeeOther            Status = 303
	StatusBadRequest          Status = 400
	StatusNotFound            Status = 404
	StatusInternalServerError Status = 500
)

// Text returns the status-line rendering of s, e.g. "200 OK".
// The 404 text is uppercase, matching the reference wire format.
func (s Status) Text() string {
	switch s {
	case StatusOK:
		return "200 OK"
	case StatusSeeOther:
		return "303 See Other"
	case StatusBadRequest:
		return "400 Bad Request"
	case StatusNotFound:
		return "404 NOT FOUND"
	case StatusInternalServerError:
		return "500 Internal Server Error"
	}
	return strconv.Itoa(int(s))
}

// String implements fmt.Stringer.
func (s Status) String() string { return s.Text() }

// Header represents a single HTTP header key-value pair.
type Header struct {
	Key   string
	Value string
}

// Headers is an ordered, repeatable list of HTTP headers.
// HTTP headers are case-insensitive by spec but we preserve original case.
type Headers []Header

// Get returns the first header value for the given key (case-insensitive).
// Returns empty string if not found.
func (h Headers) Get(key string) string {
	for _, hdr := range h {
		if strings.EqualFold(hdr.Key, key) {
			return hdr.Value
		}
	}
	return ""
}

// Values returns all header values for the given key (case-insensitive).
func (h Headers) Values(key string) []string {
	var vals []string
	for _, hdr := range h {
		if strings.EqualFold(hdr.Key, key) {
			vals = append(vals, hdr.Value)
		}
	}
	return vals
}

// Set appends a header. Duplicates are allowed and Get returns the first
// match, so setting a key twice leaves the earlier value authoritative.
func (h *Headers) Set(key, value string) {
	*h = append(*h, Header{Key: key, Value: value})
}

// Clone returns a deep copy of the headers.
func (h Headers) Clone() Headers {
	if h == nil {
		return nil
	}
	clone := make(Headers, len(h))
	copy(clone, h)
	return clone
}

// Request represents one parsed HTTP/1.1 request. All fields are copies of
// the read buffer; a Request stays valid after the buffer is discarded.
// Middleware may rewrite fields (path normalization); nothing else should.
type Request struct {
	Method  Method
	URL     *URL
	Headers Headers
	Body    []byte // raw remainder after the blank line (nil if none)
}

// Response represents an HTTP/1.1 response under construction. Handlers
// build it incrementally; a Context serializes it exactly once.
type Response struct {
	Status  Status
	Headers Headers
	Body    string
}

// NewResponse returns a response with status 200 and no headers.
func NewResponse() *Response {
	return &Response{Status: StatusOK}
}
