package testutil

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/rivalwatch/rival-watch-service/internal/poller"
)

// ErrListen is what FailingHTTPServer returns from ListenAndServe.
var ErrListen = errors.New("listen failure")

// StubPoller records Start and Stop calls and reports a fixed status.
type StubPoller struct {
	StartCalls int
	StopCalls  int
	Err        error
	StatusVal  poller.Status
}

func (p *StubPoller) Start(context.Context) { p.StartCalls++ }

func (p *StubPoller) Stop(context.Context) error {
	p.StopCalls++
	return p.Err
}

func (p *StubPoller) Status() poller.Status { return p.StatusVal }

// StubHTTPServer stands in for the server's HTTP listener. ListenAndServe returns
// ListenErr immediately. When Unblock is set, Shutdown waits for it or for ctx.
type StubHTTPServer struct {
	AddrVal     string
	HandlerVal  http.Handler
	ListenErr   error
	ShutdownErr error
	Unblock     chan struct{}

	mu            sync.Mutex
	ListenCalls   int
	ShutdownCalls int
}

// FailingHTTPServer returns a stub whose listener fails with ErrListen.
func FailingHTTPServer() *StubHTTPServer {
	return &StubHTTPServer{ListenErr: ErrListen}
}

// ClosedHTTPServer returns a stub whose listener reports a normal close.
func ClosedHTTPServer() *StubHTTPServer {
	return &StubHTTPServer{ListenErr: http.ErrServerClosed}
}

// BlockingHTTPServer returns a stub whose Shutdown blocks until Unblock is closed.
func BlockingHTTPServer() *StubHTTPServer {
	return &StubHTTPServer{Unblock: make(chan struct{})}
}

func (s *StubHTTPServer) ListenAndServe() error {
	s.mu.Lock()
	s.ListenCalls++
	s.mu.Unlock()
	return s.ListenErr
}

func (s *StubHTTPServer) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.ShutdownCalls++
	s.mu.Unlock()
	if s.Unblock == nil {
		return s.ShutdownErr
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.Unblock:
		return s.ShutdownErr
	}
}

// Shutdowns returns the Shutdown call count.
func (s *StubHTTPServer) Shutdowns() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ShutdownCalls
}

func (s *StubHTTPServer) Addr() string {
	if s.AddrVal == "" {
		return ":0"
	}
	return s.AddrVal
}

func (s *StubHTTPServer) Handler() http.Handler {
	if s.HandlerVal == nil {
		return http.NotFoundHandler()
	}
	return s.HandlerVal
}
