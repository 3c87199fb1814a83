package main

import (
	"flag"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"socialnotes/api"
	"socialnotes/auth"
	"socialnotes/authz"
	"socialnotes/config"
	"socialnotes/database"
	"socialnotes/handlers"
	"socialnotes/middleware"
	"socialnotes/storage"
)

func main() {
	configPath := flag.String("config", "", "Path to the config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := newLogger(cfg.Log.Level)

	secret := cfg.Security.JWTSecret
	if secret == "" {
		logger.Warn().Msg("security.jwt_secret not set, using a default key. This is NOT secure for production!")
		secret = "default-key-for-development-only"
	}
	tokens, err := auth.NewTokenManager(secret, cfg.Security.TokenTTL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize token manager")
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := database.Setup(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to create schema")
	}
	if err := database.Seed(db, logger, cfg.Users.ElevatedUsers, cfg.Security.BcryptCost); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed database")
	}

	users := storage.NewUserStore(db)
	friends := storage.NewFriendshipStore(db)
	notes := storage.NewNoteStore(db)

	engine := authz.NewEngine(users, friends, logger)
	guards := middleware.NewGuards(engine)
	authenticator := middleware.NewAuthenticator(tokens, logger)
	handler := handlers.New(users, friends, notes, tokens, cfg, logger)

	server := api.NewServer(handler, authenticator, guards, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Handler:      server.Handler(),
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info().Str("port", cfg.Server.Port).Msg("starting server")
	logger.Fatal().Err(srv.ListenAndServe()).Msg("server stopped")
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
}
