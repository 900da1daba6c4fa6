package main

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeServer blocks in Start until Shutdown begins, like fiber's Listen.
type fakeServer struct {
	stopped  chan struct{}
	closed   atomic.Bool
	startErr error
}

func newFakeServer() *fakeServer {
	return &fakeServer{stopped: make(chan struct{})}
}

func (f *fakeServer) Start() error {
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stopped
	return nil
}

func (f *fakeServer) Shutdown(ctx context.Context) error {
	close(f.stopped)
	// Releasing the DB and Redis happens after the listener has returned.
	time.Sleep(50 * time.Millisecond)
	f.closed.Store(true)
	return nil
}

func TestServe_WaitsForShutdownToFinish(t *testing.T) {
	srv := newFakeServer()
	stop := make(chan os.Signal, 1)
	var traced atomic.Bool

	stop <- syscall.SIGTERM
	err := serve(srv, stop, func(context.Context) error {
		time.Sleep(20 * time.Millisecond)
		traced.Store(true)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, srv.closed.Load(), "server resources closed before serve returned")
	assert.True(t, traced.Load(), "tracer flushed before serve returned")
}

func TestServe_StartFailure(t *testing.T) {
	srv := newFakeServer()
	srv.startErr = errors.New("address already in use")

	err := serve(srv, make(chan os.Signal), func(context.Context) error { return nil })
	assert.EqualError(t, err, "address already in use")
}
