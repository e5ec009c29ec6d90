package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dileepraotv/tt-sadhanam-sub000/internal/api"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/factory"
	"github.com/dileepraotv/tt-sadhanam-sub000/internal/testutil"
)

func newLocalServer(t *testing.T) *api.Server {
	t.Helper()

	app, err := factory.New(factory.Config{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })

	router := api.NewRouter(api.RouterConfig{
		Logger:               testutil.NopLogger(),
		TournamentController: app.TournamentController,
	})
	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	return api.NewServer(router, cfg, testutil.NopLogger())
}

func TestServerServesUntilShutdown(t *testing.T) {
	server := newLocalServer(t)
	require.NoError(t, server.Listen())
	assert.NotEqual(t, "127.0.0.1:0", server.Addr())

	done := make(chan error, 1)
	go func() { done <- server.Start() }()

	resp, err := http.Get("http://" + server.Addr() + "/api/v1/health")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, server.Shutdown(context.Background()))
	assert.NoError(t, <-done)
}
