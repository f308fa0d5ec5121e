package serve

import (
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AccessLog returns middleware that runs the inner handler first and then
// emits one access record with the request's method and target and the
// response's resulting status. Because it records after the inner chain,
// path rewrites made by inner middleware are visible in the logged target.
func AccessLog(log zerolog.Logger) Middleware {
	return MiddlewareFunc(func(next Handler) Handler {
		return HandlerFunc(func(c *Context) error {
			err := next.Serve(c)
			var rec *zerolog.Event
			if err != nil {
				rec = log.Error().Err(err)
			} else {
				rec = log.Info()
			}
			rec.Str("method", string(c.Request().Method)).
				Str("target", c.Request().URL.String()).
				Int("status", int(c.Response().Status)).
				Msg("access")
			return err
		})
	})
}

// StripTrailingSlash returns middleware that removes trailing slashes from
// the request path before delegating inward. Route matching has already
// happened by the time middleware runs, so the rewrite affects only what
// inner handlers and later observers see.
func StripTrailingSlash() Middleware {
	return MiddlewareFunc(func(next Handler) Handler {
		return HandlerFunc(func(c *Context) error {
			c.Request().URL.Path = strings.TrimRight(c.Request().URL.Path, "/")
			return next.Serve(c)
		})
	})
}

// RequestID returns middleware that tags each request with a fresh UUID,
// exposed on the X-Request-Id response header and on the context logger.
func RequestID() Middleware {
	return MiddlewareFunc(func(next Handler) Handler {
		return HandlerFunc(func(c *Context) error {
			id := uuid.NewString()
			c.Response().Headers.Set("X-Request-Id", id)
			c.SetLogger(c.Logger().With().Str("request_id", id).Logger())
			return next.Serve(c)
		})
	})
}
