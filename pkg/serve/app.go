package serve

import (
	"os"

	"github.com/rs/zerolog"

	"github.com/shapestone/shape-serve/pkg/message"
)

// App accumulates routes, status handlers, and middleware during the build
// phase. It is not safe for concurrent registration and must not be touched
// once Build has frozen it into a Server.
type App struct {
	routes         []*Route
	statusHandlers map[message.Status]Handler
	middleware     []Middleware
	frozen         bool
}

// NewApp returns an empty App.
func NewApp() *App {
	return &App{statusHandlers: make(map[message.Status]Handler)}
}

// Get registers a handler for GET requests matching pattern.
func (a *App) Get(pattern string, h HandlerFunc) {
	a.Handle(message.MethodGet, pattern, h)
}

// Post registers a handler for POST requests matching pattern.
func (a *App) Post(pattern string, h HandlerFunc) {
	a.Handle(message.MethodPost, pattern, h)
}

// Handle registers a route. Registration order is match order: the first
// registered route that matches a request wins, regardless of specificity.
func (a *App) Handle(method message.Method, pattern string, h Handler) {
	a.checkMutable()
	a.routes = append(a.routes, newRoute(method, pattern, h))
}

// StatusHandler registers a handler invoked in place of the default body
// when a response is dispatched with the given status.
func (a *App) StatusHandler(status message.Status, h HandlerFunc) {
	a.checkMutable()
	a.statusHandlers[status] = h
}

// Use appends middleware to the chain. The first middleware registered
// wraps outermost.
func (a *App) Use(mw ...Middleware) {
	a.checkMutable()
	a.middleware = append(a.middleware, mw...)
}

func (a *App) checkMutable() {
	if a.frozen {
		panic("serve: registration after Build")
	}
}

// Build freezes the App into a Server. Each route's handler is composed
// through the middleware chain exactly once here, so dispatch never
// recomposes. Status handlers are not wrapped; they run outside the chain.
func (a *App) Build(opts ...Option) *Server {
	a.frozen = true

	routes := make([]*Route, len(a.routes))
	for i, rt := range a.routes {
		h := rt.handler
		for j := len(a.middleware) - 1; j >= 0; j-- {
			h = a.middleware[j].Wrap(h)
		}
		routes[i] = &Route{
			method:   rt.method,
			pattern:  rt.pattern,
			segments: rt.segments,
			handler:  h,
		}
	}

	statusHandlers := make(map[message.Status]Handler, len(a.statusHandlers))
	for status, h := range a.statusHandlers {
		statusHandlers[status] = h
	}

	s := &Server{
		routes:         routes,
		statusHandlers: statusHandlers,
		log:            zerolog.New(os.Stderr).With().Timestamp().Logger(),
		maxConns:       defaultMaxConns,
		readBufSize:    defaultReadBufferSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
