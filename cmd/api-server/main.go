package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/purvjoshi04/SharedInk/internal/auth"
	"github.com/purvjoshi04/SharedInk/internal/cache"
	"github.com/purvjoshi04/SharedInk/internal/config"
	"github.com/purvjoshi04/SharedInk/internal/httpapi"
	"github.com/purvjoshi04/SharedInk/internal/repository"
	"github.com/purvjoshi04/SharedInk/pkg/database"
	"github.com/purvjoshi04/SharedInk/pkg/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log.Init(cfg.Log)
	l := log.L()

	l.Info().Str(log.FieldService, "api-server").
		Str("addr", fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)).
		Msg("starting")

	db, err := database.New(&cfg.Database)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to connect to database")
	}

	store, err := repository.NewGormStore(db)
	if err != nil {
		l.Fatal().Err(err).Msg("failed to initialize store")
	}

	var msgCache cache.MessageCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisMessageCache(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
		if err != nil {
			l.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisCache.Close()
		msgCache = redisCache
		l.Info().Str("addr", cfg.Redis.Address).Msg("connected to redis")
	}

	tokens, err := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry, cfg.Auth.Issuer)
	if err != nil {
		l.Fatal().Err(err).Msg("jwt secret is required for the api server")
	}

	router := httpapi.NewRouter(httpapi.Deps{
		Store:  store,
		Cache:  msgCache,
		Tokens: tokens,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		l.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		l.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		l.Fatal().Err(err).Msg("server error")
	}
	l.Info().Msg("stopped")
}
