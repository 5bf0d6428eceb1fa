package auth

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net"
	"net/http"
	"time"
)

var (
	ErrCallbackTimeout = errors.New("timed out waiting for the authorization callback")
	ErrStateMismatch   = errors.New("authorization callback state does not match")
)

// CallbackError is returned when Strava redirects back with an error parameter,
// typically because the user denied access.
type CallbackError struct {
	Reason string
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("authorization failed: %s", e.Reason)
}

const successPage = `<html><body style="font-family: sans-serif; text-align: center; padding-top: 50px;">
<h1>Authorization Successful!</h1>
<p>You can close this window and return to the terminal.</p>
</body></html>`

type callbackOutcome struct {
	code string
	err  error
}

// CallbackServer is a single-use listener for the OAuth redirect. It captures
// the first code or error delivered to its path and ignores anything after.
type CallbackServer struct {
	addr     string
	path     string
	state    string
	listener net.Listener
	server   *http.Server
	results  chan callbackOutcome
}

// NewCallbackServer returns a server for addr (host:port) and path. When state
// is non-empty the callback must echo it back.
func NewCallbackServer(addr, path, state string) *CallbackServer {
	s := &CallbackServer{
		addr:    addr,
		path:    path,
		state:   state,
		results: make(chan callbackOutcome, 1),
	}
	s.server = &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start binds the listener and serves in the background.
func (s *CallbackServer) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.deliver(callbackOutcome{err: fmt.Errorf("callback server: %w", err)})
		}
	}()
	return nil
}

// Addr is the bound address, useful when listening on port 0.
func (s *CallbackServer) Addr() string {
	if s.listener == nil {
		return s.addr
	}
	return s.listener.Addr().String()
}

// Await blocks until a callback arrives or ctx is done.
func (s *CallbackServer) Await(ctx context.Context) (string, error) {
	select {
	case out := <-s.results:
		return out.code, out.err
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", ErrCallbackTimeout
		}
		return "", ctx.Err()
	}
}

// Stop shuts the server down.
func (s *CallbackServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *CallbackServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != s.path {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	switch {
	case q.Get("code") != "":
		if s.state != "" && q.Get("state") != s.state {
			writeHTML(w, http.StatusBadRequest, "<html><body><h1>Error: state mismatch</h1></body></html>")
			s.deliver(callbackOutcome{err: ErrStateMismatch})
			return
		}
		writeHTML(w, http.StatusOK, successPage)
		s.deliver(callbackOutcome{code: q.Get("code")})
	case q.Has("error"):
		reason := q.Get("error")
		if reason == "" {
			reason = "Unknown"
		}
		writeHTML(w, http.StatusBadRequest, fmt.Sprintf("<html><body><h1>Error: %s</h1></body></html>", html.EscapeString(reason)))
		s.deliver(callbackOutcome{err: &CallbackError{Reason: reason}})
	default:
		http.NotFound(w, r)
	}
}

func (s *CallbackServer) deliver(out callbackOutcome) {
	select {
	case s.results <- out:
	default:
	}
}

func writeHTML(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	fmt.Fprint(w, body)
}
