package serve

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/shapestone/shape-core/pkg/ast"

	"github.com/shapestone/shape-serve/pkg/message"
)

// ErrResponseWritten reports a second finalizer call on the same Context.
var ErrResponseWritten = errors.New("serve: response already written")

// Context carries one request through the handler chain and finalizes its
// response. A Context is single-use: the first finalizer (String, File,
// JSON, Node, Redirect, or a defaulted Status) serializes the response to
// the connection, and any later finalizer fails with ErrResponseWritten.
type Context struct {
	request        *message.Request
	response       *message.Response
	params         message.Params
	statusHandlers map[message.Status]Handler
	sink           io.Writer
	log            zerolog.Logger
	written        bool
}

func newContext(req *message.Request, params message.Params, statusHandlers map[message.Status]Handler, sink io.Writer, log zerolog.Logger) *Context {
	return &Context{
		request:        req,
		response:       message.NewResponse(),
		params:         params,
		statusHandlers: statusHandlers,
		sink:           sink,
		log:            log,
	}
}

// Request returns the parsed request. Middleware may rewrite it (path
// normalization); handlers should treat it as read-only.
func (c *Context) Request() *message.Request { return c.request }

// Response returns the response under construction, for setting headers or
// an explicit status before a finalizer runs.
func (c *Context) Response() *message.Response { return c.response }

// Logger returns the logger attached to this request.
func (c *Context) Logger() zerolog.Logger { return c.log }

// SetLogger replaces the request logger, typically to attach fields.
func (c *Context) SetLogger(log zerolog.Logger) { c.log = log }

// Param returns the path parameter captured under key.
func (c *Context) Param(key string) (string, bool) {
	return c.params.Get(key)
}

// Query returns the first query parameter bound to key.
func (c *Context) Query(key string) (string, bool) {
	return c.request.URL.Query.Get(key)
}

// Written reports whether a finalizer has already run.
func (c *Context) Written() bool { return c.written }

// String finalizes the response with a plain text body.
func (c *Context) String(body string) error {
	c.response.Body = body
	return c.write()
}

// File finalizes the response with the contents of the named file.
func (c *Context) File(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("serve: read %s: %w", path, err)
	}
	c.response.Body = string(data)
	return c.write()
}

// JSON finalizes the response with the JSON encoding of v and a
// Content-Type header.
func (c *Context) JSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return &SerializationError{Err: err}
	}
	c.response.Headers.Set("Content-Type", "application/json")
	c.response.Body = string(data)
	return c.write()
}

// Node finalizes the response with the JSON rendering of a shape-core AST
// node, for handlers that already carry structured payloads as AST.
func (c *Context) Node(n ast.SchemaNode) error {
	return c.JSON(message.NodeToValue(n))
}

// Redirect finalizes with a 303 See Other pointing at location.
func (c *Context) Redirect(location string) error {
	c.response.Status = message.StatusSeeOther
	c.response.Headers.Set("Location", location)
	return c.write()
}

// Status responds through the handler registered for status, falling back
// to the status text as the entire body.
func (c *Context) Status(status message.Status) error {
	c.response.Status = status
	if h, ok := c.statusHandlers[status]; ok {
		return h.Serve(c)
	}
	return c.String(status.Text())
}

func (c *Context) write() error {
	if c.written {
		return ErrResponseWritten
	}
	c.written = true
	data, err := message.Marshal(c.response)
	if err != nil {
		return err
	}
	if _, err := c.sink.Write(data); err != nil {
		return &ConnectionError{Op: "write", Err: err}
	}
	return nil
}
