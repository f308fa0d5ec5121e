package message

import (
	"fmt"
	"sync"
)

// bufPool pools []byte slices for the marshal fast path.
var bufPool = sync.Pool{
	New: func() interface{} {
		b := make([]byte, 0, 2048)
		return &b
	},
}

// Marshal returns the HTTP/1.1 wire-format encoding of v.
//
// v must be a *Request or *Response. Serialization is the literal inverse
// of parsing: start line, each header as "name: value" joined by CRLF, a
// blank line, then the body. No Content-Length is added; framing is the
// caller's concern.
//
// Marshal uses a sync.Pool buffer internally for zero-alloc serialization.
func Marshal(v interface{}) ([]byte, error) {
	if v == nil {
		return nil, fmt.Errorf("message: Marshal(nil)")
	}

	bp := bufPool.Get().(*[]byte)
	buf := (*bp)[:0]

	switch msg := v.(type) {
	case *Request:
		buf = appendRequest(buf, msg)
	case *Response:
		buf = appendResponse(buf, msg)
	default:
		*bp = buf
		bufPool.Put(bp)
		return nil, fmt.Errorf("message: Marshal unsupported type %T (expected *Request or *Response)", v)
	}

	result := make([]byte, len(buf))
	copy(result, buf)
	*bp = buf
	bufPool.Put(bp)
	return result, nil
}

// appendRequest appends "METHOD TARGET HTTP/1.1", headers, blank line, body.
func appendRequest(buf []byte, req *Request) []byte {
	buf = append(buf, string(req.Method)...)
	buf = append(buf, ' ')
	if req.URL != nil {
		buf = append(buf, req.URL.String()...)
	}
	buf = append(buf, " HTTP/1.1"...)
	buf = appendCRLF(buf)
	buf = appendHeaders(buf, req.Headers)
	buf = appendCRLF(buf)
	return append(buf, req.Body...)
}

// appendResponse appends "HTTP/1.1 STATUS-TEXT", headers, blank line, body.
func appendResponse(buf []byte, resp *Response) []byte {
	buf = append(buf, "HTTP/1.1 "...)
	buf = append(buf, resp.Status.Text()...)
	buf = appendCRLF(buf)
	buf = appendHeaders(buf, resp.Headers)
	buf = appendCRLF(buf)
	return append(buf, resp.Body...)
}

func appendHeaders(buf []byte, headers Headers) []byte {
	for _, h := range headers {
		buf = append(buf, h.Key...)
		buf = append(buf, ": "...)
		buf = append(buf, h.Value...)
		buf = appendCRLF(buf)
	}
	return buf
}

// appendCRLF appends \r\n to buf.
func appendCRLF(buf []byte) []byte {
	return append(buf, '\r', '\n')
}
