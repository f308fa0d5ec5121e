// Package wire splits raw bytes captured from a connection into the pieces
// of an HTTP/1.1 request: request line, header fields, and body. It scans
// bytes directly and does not interpret methods or request-targets; that
// belongs to pkg/message.
package wire

import (
	"bytes"
	"fmt"
)

// Request holds the uninterpreted pieces of one request message. String
// fields are copies; Body aliases the input and must be copied by callers
// that outlive the read buffer.
type Request struct {
	Method  string
	Target  string
	Version string
	Headers []Header
	Body    []byte
}

// Header is a single name/value field, order-preserving.
type Header struct {
	Key   string
	Value string
}

// Error describes a scan failure and the 1-indexed line it occurred on.
type Error struct {
	Msg  string
	Line int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("wire: line %d: %s", e.Line, e.Msg)
	}
	return "wire: " + e.Msg
}

func errorf(line int, format string, args ...interface{}) *Error {
	return &Error{Msg: fmt.Sprintf(format, args...), Line: line}
}

var (
	crlf      = []byte("\r\n")
	blankLine = []byte("\r\n\r\n")
)

// ScanRequest splits data into request line, headers, and body. The first
// CRLF ends the request line; the first blank line ends the headers; the
// body is the raw remainder. There is no length-based framing, so the body
// extends exactly as far as the transport read did.
func ScanRequest(data []byte) (*Request, error) {
	head, body, hasBody := bytes.Cut(data, blankLine)

	line, headerBytes, ok := bytes.Cut(head, crlf)
	if !ok {
		if !hasBody {
			return nil, errorf(1, "missing request line")
		}
		// The only CRLF was part of the blank line: a request line
		// with no header fields.
		line, headerBytes = head, nil
	}

	method, target, version, err := scanRequestLine(line)
	if err != nil {
		return nil, err
	}
	headers, err := scanHeaders(headerBytes)
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		body = nil
	}

	return &Request{
		Method:  method,
		Target:  target,
		Version: version,
		Headers: headers,
		Body:    body,
	}, nil
}

// scanRequestLine parses "METHOD SP TARGET SP VERSION".
func scanRequestLine(line []byte) (method, target, version string, err error) {
	sp1 := bytes.IndexByte(line, ' ')
	if sp1 < 0 {
		return "", "", "", errorf(1, "malformed request line: no method separator")
	}
	method = internMethod(line[:sp1])

	rest := line[sp1+1:]
	sp2 := bytes.IndexByte(rest, ' ')
	if sp2 < 0 {
		return "", "", "", errorf(1, "malformed request line: no version separator")
	}
	target = string(rest[:sp2])
	version = string(rest[sp2+1:])

	if method == "" {
		return "", "", "", errorf(1, "empty request method")
	}
	if target == "" {
		return "", "", "", errorf(1, "empty request target")
	}
	if version != "HTTP/1.1" {
		return "", "", "", errorf(1, "unsupported protocol version %q", version)
	}
	return method, target, version, nil
}

// scanHeaders parses "Key: Value" lines. The request line is line 1, so
// header i reports as line i+2.
func scanHeaders(b []byte) ([]Header, error) {
	if len(b) == 0 {
		return nil, nil
	}
	lines := bytes.Split(b, crlf)
	headers := make([]Header, 0, len(lines))
	for i, line := range lines {
		if len(line) == 0 {
			break
		}
		key, value, ok := bytes.Cut(line, []byte(": "))
		if !ok {
			return nil, errorf(i+2, "malformed header field %q", string(line))
		}
		headers = append(headers, Header{
			Key:   internHeaderName(key),
			Value: string(value),
		})
	}
	return headers, nil
}
