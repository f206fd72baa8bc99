package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bcgsc/mavis-config/internal/testutil"
	"github.com/bcgsc/mavis-config/pkg/api"
	"github.com/bcgsc/mavis-config/pkg/stage"
	"github.com/bcgsc/mavis-config/pkg/validation"
	"github.com/creasty/defaults"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, defaults.Set(cfg))

	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, ":8080", cfg.API.Addr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Nil(t, cfg.HealthCheckAddr)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	cfg := &Config{}
	assert.ErrorIs(t, cfg.Validate(), api.ErrAPIAddrRequired)
}

func TestNewServer_InvalidConfig(t *testing.T) {
	graph, err := stage.NewPipelineGraph()
	require.NoError(t, err)

	_, err = NewServer(testutil.Logger(), &Config{}, validation.NewMockValidator(), graph)
	assert.ErrorIs(t, err, api.ErrAPIAddrRequired)
}

func TestServer_StartStopsOnCancel(t *testing.T) {
	graph, err := stage.NewPipelineGraph()
	require.NoError(t, err)

	health := "127.0.0.1:0"
	cfg := &Config{
		MetricsAddr:     "127.0.0.1:0",
		HealthCheckAddr: &health,
		API:             api.Config{Addr: "127.0.0.1:0"},
		ShutdownTimeout: time.Second,
	}

	srv, err := NewServer(testutil.Logger(), cfg, validation.NewMockValidator(), graph)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Start(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	healthHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
