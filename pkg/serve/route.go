package serve

import (
	"strings"

	"github.com/shapestone/shape-serve/pkg/message"
)

// Route binds a method and path pattern to a handler. Patterns are
// slash-separated; a segment wrapped in braces captures the corresponding
// request segment as a named parameter. Routes are immutable after
// registration.
type Route struct {
	method   message.Method
	pattern  string
	segments []string
	handler  Handler
}

func newRoute(method message.Method, pattern string, handler Handler) *Route {
	return &Route{
		method:   method,
		pattern:  pattern,
		segments: strings.Split(pattern, "/"),
		handler:  handler,
	}
}

// Pattern returns the registered pattern string.
func (r *Route) Pattern() string { return r.pattern }

// match reports whether r accepts req, binding captured segments as params
// in pattern order. Literal segments compare byte-exact; segment counts
// must agree. No wildcard or trailing-slash handling happens here — path
// normalization is a middleware concern.
func (r *Route) match(req *message.Request) (message.Params, bool) {
	if req.Method != r.method {
		return nil, false
	}
	got := strings.Split(req.URL.Path, "/")
	if len(got) != len(r.segments) {
		return nil, false
	}
	var params message.Params
	for i, seg := range r.segments {
		if len(seg) >= 2 && seg[0] == '{' && seg[len(seg)-1] == '}' {
			params.Add(seg[1:len(seg)-1], got[i])
			continue
		}
		if seg != got[i] {
			return nil, false
		}
	}
	return params, true
}
