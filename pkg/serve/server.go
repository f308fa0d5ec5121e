package serve

import (
	"errors"
	"io"
	"net"

	"github.com/rs/zerolog"

	"github.com/shapestone/shape-serve/pkg/message"
)

const (
	defaultMaxConns       = 256
	defaultReadBufferSize = 2048
)

// Server is a frozen App. Its route table, status-handler table, and
// composed handlers never change after Build, so connection goroutines
// share them without locking.
type Server struct {
	routes         []*Route
	statusHandlers map[message.Status]Handler
	log            zerolog.Logger
	maxConns       int
	readBufSize    int
}

// Option configures a Server at Build time.
type Option func(*Server)

// WithLogger sets the server logger. The default logs to stderr with
// timestamps.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Server) { s.log = log }
}

// WithMaxConns bounds the number of connections served simultaneously.
func WithMaxConns(n int) Option {
	return func(s *Server) { s.maxConns = n }
}

// WithReadBufferSize sets the size of the single read that frames each
// request. Requests larger than this are truncated.
func WithReadBufferSize(n int) Option {
	return func(s *Server) { s.readBufSize = n }
}

// ListenAndServe listens on the TCP address addr and serves until the
// listener fails or is closed.
func (s *Server) ListenAndServe(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return &ConnectionError{Op: "listen", Err: err}
	}
	defer l.Close()
	return s.Serve(l)
}

// Serve accepts connections from l, handing each to its own goroutine. A
// counting semaphore bounds the number in flight. Accept errors on a live
// listener are logged and do not stop the loop; a closed listener ends it
// cleanly.
func (s *Server) Serve(l net.Listener) error {
	sem := make(chan struct{}, s.maxConns)
	for {
		conn, err := l.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.log.Error().Err(err).Msg("accept failed")
			continue
		}
		sem <- struct{}{}
		go func() {
			defer func() { <-sem }()
			s.handleConn(conn)
		}()
	}
}

// handleConn reads one request, dispatches it, and closes the connection.
// There is no keep-alive: each connection carries exactly one exchange.
// A malformed request gets a 400 on this connection only.
func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, s.readBufSize)
	n, err := conn.Read(buf)
	if err != nil && n == 0 {
		s.log.Warn().Err(err).Msg("read failed")
		return
	}

	req, err := message.ParseRequest(buf[:n])
	if err != nil {
		s.log.Warn().Err(err).Msg("malformed request")
		ctx := newContext(&message.Request{URL: &message.URL{}}, nil, s.statusHandlers, conn, s.log)
		if werr := ctx.Status(message.StatusBadRequest); werr != nil {
			s.log.Error().Err(werr).Msg("write 400 failed")
		}
		return
	}
	s.dispatch(req, conn)
}

// dispatch scans routes in registration order and runs the composed handler
// for the first match against a fresh context. No match falls back to the
// 404 status path; a handler error with nothing written yet becomes a 500.
func (s *Server) dispatch(req *message.Request, sink io.Writer) {
	for _, rt := range s.routes {
		params, ok := rt.match(req)
		if !ok {
			continue
		}
		ctx := newContext(req, params, s.statusHandlers, sink, s.log)
		if err := rt.handler.Serve(ctx); err != nil {
			s.log.Error().Err(err).Str("pattern", rt.pattern).Msg("handler failed")
			if !ctx.Written() {
				if werr := ctx.Status(message.StatusInternalServerError); werr != nil {
					s.log.Error().Err(werr).Msg("write 500 failed")
				}
			}
		}
		return
	}

	ctx := newContext(req, nil, s.statusHandlers, sink, s.log)
	if err := ctx.Status(message.StatusNotFound); err != nil {
		s.log.Error().Err(err).Msg("write 404 failed")
	}
}
