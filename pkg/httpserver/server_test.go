package httpserver

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_Run(t *testing.T) {
	t.Parallel()

	t.Run("stops when the context is cancelled", func(t *testing.T) {
		t.Parallel()

		srv := New(WithAddr("127.0.0.1:0"), WithShutdownTimeout(time.Second))
		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan error, 1)
		go func() { done <- srv.Run(ctx, http.NotFoundHandler()) }()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("server did not stop after context cancellation")
		}
	})

	t.Run("listener failure is wrapped with ErrStart", func(t *testing.T) {
		t.Parallel()

		srv := New(WithAddr("256.256.256.256:0"))
		err := srv.Run(context.Background(), nil)
		assert.ErrorIs(t, err, ErrStart)
	})
}

func TestServer_Shutdown(t *testing.T) {
	t.Parallel()

	t.Run("safe before run and on repeat", func(t *testing.T) {
		t.Parallel()

		srv := New()
		require.NoError(t, srv.Shutdown(context.Background()))
		require.NoError(t, srv.Shutdown(context.Background()))
	})
}

func TestOptions(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { WithAddr("") })
	assert.Panics(t, func() { WithReadTimeout(0) })
	assert.Panics(t, func() { WithWriteTimeout(-1) })
	assert.Panics(t, func() { WithIdleTimeout(0) })
	assert.Panics(t, func() { WithShutdownTimeout(0) })
}

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	log := slog.Default()

	t.Run("liveness without checks", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		HealthCheckHandler(ctx, log)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ALIVE", rec.Body.String())
	})

	t.Run("readiness with passing checks", func(t *testing.T) {
		t.Parallel()

		ok := func(context.Context) error { return nil }
		rec := httptest.NewRecorder()
		HealthCheckHandler(ctx, log, ok, ok)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "READY", rec.Body.String())
	})

	t.Run("readiness with a failing check", func(t *testing.T) {
		t.Parallel()

		failing := func(context.Context) error { return errors.New("store down") }
		rec := httptest.NewRecorder()
		HealthCheckHandler(ctx, log, failing)(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "NOT_READY", rec.Body.String())
	})
}
