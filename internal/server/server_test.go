// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/MKhiriev/go-bookmarks/internal/config"
	"github.com/MKhiriev/go-bookmarks/internal/handler"
	myHTTP "github.com/MKhiriev/go-bookmarks/internal/handler/http"
	"github.com/MKhiriev/go-bookmarks/internal/logger"
	"github.com/MKhiriev/go-bookmarks/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testServerConfig() config.StructuredConfig {
	return config.StructuredConfig{
		App: config.App{Env: config.EnvTest},
		Server: config.Server{
			HTTPAddress:     "127.0.0.1:0",
			RequestTimeout:  5 * time.Second,
			ShutdownTimeout: 2 * time.Second,
		},
	}
}

func testHandlers(cfg config.StructuredConfig) *handler.Handlers {
	return &handler.Handlers{HTTP: myHTTP.NewHandler(&service.Services{}, cfg, logger.Nop())}
}

// hookRecorder records the order shutdown hooks ran in.
type hookRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *hookRecorder) hook(name string, err error) ShutdownHook {
	return func(ctx context.Context) error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.calls = append(r.calls, name)
		return err
	}
}

func (r *hookRecorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func TestNewServer(t *testing.T) {
	t.Run("creates HTTP server", func(t *testing.T) {
		cfg := testServerConfig()
		s, err := NewServer(testHandlers(cfg), cfg.Server, logger.Nop())

		require.NoError(t, err)
		srv := s.(*server)
		require.NotNil(t, srv.httpServer)
		assert.Equal(t, 2*time.Second, srv.shutdownTimeout)
		assert.Equal(t, readHeaderTimeout, srv.httpServer.server.ReadHeaderTimeout)
		assert.Equal(t, 5*time.Second, srv.httpServer.server.ReadTimeout)
		assert.Equal(t, 5*time.Second+writeTimeoutSlack, srv.httpServer.server.WriteTimeout)
	})

	t.Run("no address", func(t *testing.T) {
		cfg := testServerConfig()
		cfg.Server.HTTPAddress = ""

		s, err := NewServer(testHandlers(cfg), cfg.Server, logger.Nop())

		require.ErrorIs(t, err, errNoServersAreCreated)
		assert.Nil(t, s)
	})

	t.Run("no handler", func(t *testing.T) {
		cfg := testServerConfig()

		_, err := NewServer(&handler.Handlers{}, cfg.Server, logger.Nop())

		require.ErrorIs(t, err, errNoServersAreCreated)
	})

	t.Run("default shutdown timeout", func(t *testing.T) {
		cfg := testServerConfig()
		cfg.Server.ShutdownTimeout = 0

		s, err := NewServer(testHandlers(cfg), cfg.Server, logger.Nop())

		require.NoError(t, err)
		assert.Equal(t, defaultShutdownTimeout, s.(*server).shutdownTimeout)
	})
}

func TestServer_RunServesUntilCancelled(t *testing.T) {
	cfg := testServerConfig()
	rec := &hookRecorder{}

	s, err := NewServer(testHandlers(cfg), cfg.Server, logger.Nop(),
		rec.hook("workers", nil),
		rec.hook("storages", nil),
	)
	require.NoError(t, err)
	srv := s.(*server)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.run(ctx, func() error { return srv.httpServer.serve(listener) })
	}()

	url := fmt.Sprintf("http://%s/api/health", listener.Addr())
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	assert.Empty(t, rec.names(), "hooks must not run while serving")

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.Equal(t, []string{"workers", "storages"}, rec.names())
}

func TestServer_RunReturnsListenerFailure(t *testing.T) {
	cfg := testServerConfig()
	rec := &hookRecorder{}

	s, err := NewServer(testHandlers(cfg), cfg.Server, logger.Nop(), rec.hook("storages", nil))
	require.NoError(t, err)

	listenErr := errors.New("address already in use")
	err = s.(*server).run(context.Background(), func() error { return listenErr })

	require.ErrorIs(t, err, listenErr)
	assert.Equal(t, []string{"storages"}, rec.names())
}

func TestServer_ShutdownRunsHooksOnce(t *testing.T) {
	cfg := testServerConfig()
	rec := &hookRecorder{}

	s, err := NewServer(testHandlers(cfg), cfg.Server, logger.Nop(),
		rec.hook("failing", errors.New("close failed")),
		rec.hook("after", nil),
	)
	require.NoError(t, err)

	s.Shutdown()
	s.Shutdown()

	assert.Equal(t, []string{"failing", "after"}, rec.names(), "a failing hook does not stop the rest")
}

func TestServer_RunWithoutHTTPServer(t *testing.T) {
	s := &server{logger: logger.Nop()}

	err := s.run(context.Background(), func() error { return nil })

	require.ErrorIs(t, err, errNoServersToRun)
}

func TestHTTPServer_RunServerInvalidAddress(t *testing.T) {
	cfg := testServerConfig()
	cfg.Server.HTTPAddress = "not-an-address"

	h := newHTTPServer(http.NotFoundHandler(), cfg.Server, logger.Nop())

	assert.Error(t, h.RunServer())
}
