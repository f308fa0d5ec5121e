package serve

import (
	"bytes"
	"errors"
	"io"
	"net"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/shapestone/shape-serve/pkg/message"
)

func TestDispatch_HelloQuery(t *testing.T) {
	app := NewApp()
	app.Get("/hello", func(c *Context) error {
		name, _ := c.Query("name")
		return c.String("Hello, " + name + "!")
	})
	s := app.Build(WithLogger(zerolog.Nop()))

	req, err := message.ParseRequest([]byte("GET /hello?name=Amelia HTTP/1.1\r\n\r\n"))
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}

	var sink bytes.Buffer
	s.dispatch(req, &sink)

	want := "HTTP/1.1 200 OK\r\n\r\nHello, Amelia!"
	if sink.String() != want {
		t.Errorf("response = %q, want %q", sink.String(), want)
	}
}

func TestDispatch_NotFound_Default(t *testing.T) {
	app := NewApp()
	app.Get("/known", func(c *Context) error { return c.String("ok") })
	s := app.Build(WithLogger(zerolog.Nop()))

	var sink bytes.Buffer
	s.dispatch(mustRequest(t, message.MethodGet, "/unknown"), &sink)

	if !strings.HasSuffix(sink.String(), "404 NOT FOUND") {
		t.Errorf("response = %q, want default 404 body", sink.String())
	}
}

func TestDispatch_NotFound_CustomHandler(t *testing.T) {
	app := NewApp()
	app.StatusHandler(message.StatusNotFound, func(c *Context) error {
		return c.String("these are not the pages you are looking for")
	})
	s := app.Build(WithLogger(zerolog.Nop()))

	var sink bytes.Buffer
	s.dispatch(mustRequest(t, message.MethodGet, "/unknown"), &sink)

	if !strings.HasSuffix(sink.String(), "not the pages you are looking for") {
		t.Errorf("response = %q, want custom 404 body", sink.String())
	}
}

func TestDispatch_RegistrationOrderWins(t *testing.T) {
	var hit string

	app := NewApp()
	app.Get("/a/{x}", func(c *Context) error {
		hit = "capture"
		return c.String("ok")
	})
	app.Get("/a/b", func(c *Context) error {
		hit = "literal"
		return c.String("ok")
	})
	s := app.Build(WithLogger(zerolog.Nop()))

	var sink bytes.Buffer
	s.dispatch(mustRequest(t, message.MethodGet, "/a/b"), &sink)

	// The first registered route wins even though the second is more
	// specific.
	if hit != "capture" {
		t.Errorf("hit = %q, want capture", hit)
	}
}

func TestDispatch_HandlerErrorBecomes500(t *testing.T) {
	app := NewApp()
	app.Get("/boom", func(c *Context) error {
		return errors.New("kaput")
	})
	s := app.Build(WithLogger(zerolog.Nop()))

	var sink bytes.Buffer
	s.dispatch(mustRequest(t, message.MethodGet, "/boom"), &sink)

	if !strings.HasPrefix(sink.String(), "HTTP/1.1 500 Internal Server Error\r\n") {
		t.Errorf("response = %q, want 500", sink.String())
	}
}

func TestDispatch_HandlerErrorAfterWriteLeavesResponse(t *testing.T) {
	app := NewApp()
	app.Get("/late", func(c *Context) error {
		if err := c.String("done"); err != nil {
			return err
		}
		return errors.New("failed afterwards")
	})
	s := app.Build(WithLogger(zerolog.Nop()))

	var sink bytes.Buffer
	s.dispatch(mustRequest(t, message.MethodGet, "/late"), &sink)

	want := "HTTP/1.1 200 OK\r\n\r\ndone"
	if sink.String() != want {
		t.Errorf("response = %q, want the already-written %q", sink.String(), want)
	}
}

func TestDispatch_ParamBinding(t *testing.T) {
	app := NewApp()
	app.Get("/users/{id}", func(c *Context) error {
		id, _ := c.Param("id")
		return c.String("user " + id)
	})
	s := app.Build(WithLogger(zerolog.Nop()))

	var sink bytes.Buffer
	s.dispatch(mustRequest(t, message.MethodGet, "/users/42"), &sink)

	if !strings.HasSuffix(sink.String(), "user 42") {
		t.Errorf("response = %q, want body user 42", sink.String())
	}
}

func TestBuild_FreezesApp(t *testing.T) {
	app := NewApp()
	app.Get("/", func(c *Context) error { return c.String("ok") })
	app.Build(WithLogger(zerolog.Nop()))

	assertPanics := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s after Build did not panic", name)
			}
		}()
		fn()
	}
	assertPanics("Get", func() {
		app.Get("/late", func(c *Context) error { return nil })
	})
	assertPanics("Use", func() {
		app.Use(StripTrailingSlash())
	})
	assertPanics("StatusHandler", func() {
		app.StatusHandler(message.StatusNotFound, func(c *Context) error { return nil })
	})
}

// exchange runs handleConn against an in-memory connection, writes request,
// and returns everything the server sent back.
func exchange(t *testing.T, s *Server, request string) string {
	t.Helper()
	client, server := net.Pipe()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.handleConn(server)
	}()

	if _, err := client.Write([]byte(request)); err != nil {
		t.Fatalf("write request: %v", err)
	}
	resp, err := io.ReadAll(client)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	<-done
	client.Close()
	return string(resp)
}

func TestHandleConn_EndToEnd(t *testing.T) {
	app := NewApp()
	app.Get("/hello", func(c *Context) error {
		name, _ := c.Query("name")
		return c.String("Hello, " + name + "!")
	})
	s := app.Build(WithLogger(zerolog.Nop()))

	resp := exchange(t, s, "GET /hello?name=Amelia HTTP/1.1\r\n\r\n")
	want := "HTTP/1.1 200 OK\r\n\r\nHello, Amelia!"
	if resp != want {
		t.Errorf("response = %q, want %q", resp, want)
	}
}

func TestHandleConn_MalformedRequestGets400(t *testing.T) {
	app := NewApp()
	s := app.Build(WithLogger(zerolog.Nop()))

	resp := exchange(t, s, "NONSENSE\r\n\r\n")
	if !strings.HasPrefix(resp, "HTTP/1.1 400 Bad Request\r\n") {
		t.Errorf("response = %q, want 400", resp)
	}
}

func TestHandleConn_PostBody(t *testing.T) {
	app := NewApp()
	app.Post("/echo", func(c *Context) error {
		return c.String(string(c.Request().Body))
	})
	s := app.Build(WithLogger(zerolog.Nop()))

	resp := exchange(t, s, "POST /echo HTTP/1.1\r\nHost: x\r\n\r\npayload")
	if !strings.HasSuffix(resp, "\r\n\r\npayload") {
		t.Errorf("response = %q, want echoed body", resp)
	}
}

func TestServe_ClosedListenerReturnsNil(t *testing.T) {
	app := NewApp()
	s := app.Build(WithLogger(zerolog.Nop()))

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	errCh := make(chan error, 1)
	go func() { errCh <- s.Serve(l) }()

	l.Close()
	if err := <-errCh; err != nil {
		t.Errorf("Serve() after close = %v, want nil", err)
	}
}
