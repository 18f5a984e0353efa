// Command api serves the characters API.
//
// @title                       Characters API
// @version                     1.0
// @description                 Character catalogue behind bearer-token authentication and role-based authorization.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	gomongo "go.mongodb.org/mongo-driver/mongo"

	"github.com/characters/characters-api/internal/api"
	"github.com/characters/characters-api/internal/api/handler"
	"github.com/characters/characters-api/internal/core/ports"
	"github.com/characters/characters-api/internal/core/service"
	"github.com/characters/characters-api/internal/infrastructure/db/mongo"
	"github.com/characters/characters-api/internal/infrastructure/db/redis"
	"github.com/characters/characters-api/internal/infrastructure/memory"
	"github.com/characters/characters-api/internal/infrastructure/security"
	"github.com/characters/characters-api/internal/pkg/config"
	"github.com/characters/characters-api/pkg/logger"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger options come from config, so this one is bootstrapped by hand.
		boot := logger.Init(logger.Options{Service: "characters-api"})
		boot.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "characters-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	readiness := make(map[string]handler.Pinger)

	var (
		users      ports.UserRepository
		characters ports.CharacterRepository
	)
	switch cfg.StorageBackend {
	case config.BackendMongo:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		userRepo := mongo.NewUserRepository(db)
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			return err
		}
		users = userRepo
		characters = mongo.NewCharacterRepository(db)
		readiness["mongodb"] = mongoPinger(client)
	default:
		users = memory.NewUserRepository()
		characters = memory.NewCharacterRepository()
	}

	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	var revocations ports.RevocationRegistry
	switch cfg.RevocationBackend {
	case config.BackendRedis:
		rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer func() { _ = rdb.Close() }()

		revocations = redis.NewRevocationRegistry(rdb, tokens.AccessTTL())
		readiness["redis"] = redisPinger(rdb)
	default:
		revocations = memory.NewRevocationRegistry()
	}

	store := service.NewCredentialStore(users, security.NewBcryptHasher(cfg.BcryptCost))
	authService := service.NewAuthService(store, tokens, revocations, log)
	if err := authService.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return err
	}

	e := api.NewRouter(api.Deps{
		AuthService:      authService,
		CharacterService: service.NewCharacterService(characters),
		TokenVerifier:    tokens,
		Revocations:      revocations,
		Readiness:        readiness,
		Log:              log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("storage", cfg.StorageBackend).
			Str("revocation", cfg.RevocationBackend).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	log.Info().Msg("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info().Msg("shutdown complete")
	return nil
}

func mongoPinger(client *gomongo.Client) handler.Pinger {
	return func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	}
}

func redisPinger(rdb *goredis.Client) handler.Pinger {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
