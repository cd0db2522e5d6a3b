package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/authkit/modules/authapi"
	"github.com/dmitrymomot/authkit/pkg/auth"
	"github.com/dmitrymomot/authkit/pkg/authclient"
	"github.com/dmitrymomot/authkit/pkg/config"
	"github.com/dmitrymomot/authkit/pkg/googleauth"
	"github.com/dmitrymomot/authkit/pkg/httpserver"
	"github.com/dmitrymomot/authkit/pkg/logger"
	"github.com/dmitrymomot/authkit/pkg/session"
)

func main() {
	ctx := context.Background()

	var logCfg logger.Config
	config.MustLoad(&logCfg)
	log, err := logger.New(logCfg)
	if err != nil {
		panic(err)
	}

	var clientCfg authclient.Config
	config.MustLoad(&clientCfg)

	var googleCfg googleauth.Config
	config.MustLoad(&googleCfg)

	var srvCfg httpserver.Config
	config.MustLoad(&srvCfg)

	store, closeStore := newSessionStore(ctx, log)
	defer closeStore()

	sessions := session.NewManager(store, session.WithLogger(log))
	if user, _, ok := sessions.Restore(ctx); ok {
		log.InfoContext(ctx, "session restored", logger.UserID(user.ID))
	}

	client := authclient.NewFromConfig(clientCfg, authclient.WithLogger(log))
	flow := googleauth.NewFlow(googleCfg, googleauth.WithFlowLogger(log))
	registry := auth.NewDefaultRegistry(client, flow, auth.WithLogger(log))

	svc := authapi.NewService(registry, sessions, flow, authapi.WithLogger(log))

	r := chi.NewRouter()
	r.Mount("/api/auth", svc.Router())
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))

	srv := httpserver.NewFromConfig(srvCfg, httpserver.WithLogger(log))
	if err := srv.Run(ctx, r); err != nil {
		log.ErrorContext(ctx, "server exited", logger.Error(err))
		os.Exit(1)
	}
}

// newSessionStore selects the session backend: Redis when REDIS_URL is set,
// otherwise in-process memory.
func newSessionStore(ctx context.Context, log *slog.Logger) (session.Store, func()) {
	if os.Getenv("REDIS_URL") == "" {
		return session.NewMemoryStore(), func() {}
	}

	var redisCfg session.RedisConfig
	config.MustLoad(&redisCfg)

	store, err := session.ConnectRedisStore(ctx, redisCfg)
	if err != nil {
		log.ErrorContext(ctx, "failed to connect session store", logger.Error(err))
		os.Exit(1)
	}
	return store, func() { _ = store.Close() }
}
