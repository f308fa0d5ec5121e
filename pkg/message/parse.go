package message

import (
	"errors"

	"github.com/shapestone/shape-serve/internal/wire"
)

// ParseRequest parses one HTTP/1.1 request captured from a connection read.
//
// It fails with *ParseError when the request line is missing, the version
// token is not exactly "HTTP/1.1", the method is unsupported, a header line
// lacks a ": " separator, or the request-target does not parse. The body is
// the raw remainder after the first blank line; its extent is whatever the
// transport read captured.
func ParseRequest(data []byte) (*Request, error) {
	raw, err := wire.ScanRequest(data)
	if err != nil {
		var werr *wire.Error
		if errors.As(err, &werr) {
			return nil, &ParseError{Message: werr.Msg, Line: werr.Line}
		}
		return nil, &ParseError{Message: err.Error()}
	}

	method, err := ParseMethod(raw.Method)
	if err != nil {
		return nil, err
	}
	u, err := ParseURL(raw.Target)
	if err != nil {
		return nil, err
	}

	var headers Headers
	if len(raw.Headers) > 0 {
		headers = make(Headers, len(raw.Headers))
		for i, h := range raw.Headers {
			headers[i] = Header{Key: h.Key, Value: h.Value}
		}
	}

	// Copy the body so the request survives read-buffer reuse.
	var body []byte
	if len(raw.Body) > 0 {
		body = make([]byte, len(raw.Body))
		copy(body, raw.Body)
	}

	return &Request{
		Method:  method,
		URL:     u,
		Headers: headers,
		Body:    body,
	}, nil
}
