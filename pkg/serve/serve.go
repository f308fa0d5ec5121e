// Package serve implements a minimal HTTP/1.1 server core over raw TCP:
// a pattern router with named segment capture, an onion-composed middleware
// chain, and a per-request context that finalizes exactly one response.
//
// # Lifecycle
//
// An App collects routes, status handlers, and middleware during a build
// phase. Build freezes them into a Server: handlers are composed through
// the middleware chain once, and the resulting tables never change. The
// frozen tables are shared read-only across connection goroutines, so the
// serving hot path takes no locks. Registering on an App after Build is a
// programming error and panics.
//
// # Framing
//
// Each connection carries exactly one exchange: a single fixed-size read
// frames the request, the composed handler writes one response, and the
// connection closes. There is no keep-alive and no length-based framing;
// requests larger than the read buffer are truncated.
package serve

// Handler responds to one request through its Context.
type Handler interface {
	Serve(c *Context) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(c *Context) error

// Serve calls f(c).
func (f HandlerFunc) Serve(c *Context) error { return f(c) }

// Middleware transforms a handler into a wrapping handler. Chains compose
// as an onion: the first-registered middleware wraps outermost, observing
// the request first on the way in and last on the way out.
type Middleware interface {
	Wrap(next Handler) Handler
}

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc func(next Handler) Handler

// Wrap calls f(next).
func (f MiddlewareFunc) Wrap(next Handler) Handler { return f(next) }
