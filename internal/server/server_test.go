package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/dispenser-api/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	log := zerolog.Nop()
	return &Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server:  config.ServerConfig{Port: "0", ReadTimeout: 5, WriteTimeout: 10, IdleTimeout: 60},
		},
		Logger: &log,
	}
}

func TestStartWithoutSetup(t *testing.T) {
	err := newTestServer().Start()
	require.Error(t, err)
}

func TestSetupHTTPServer(t *testing.T) {
	s := newTestServer()
	s.SetupHTTPServer(http.NotFoundHandler())

	require.NotNil(t, s.httpServer)
	assert.Equal(t, ":0", s.httpServer.Addr)
	assert.Equal(t, 5*time.Second, s.httpServer.ReadTimeout)
	assert.Equal(t, 10*time.Second, s.httpServer.WriteTimeout)
}

func TestShutdownWithoutStores(t *testing.T) {
	s := newTestServer()
	s.SetupHTTPServer(http.NotFoundHandler())

	assert.NoError(t, s.Shutdown(context.Background()))
}
