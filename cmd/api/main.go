package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/promptstudio/internal/http/handlers"
	"github.com/promptstudio/internal/http/httpapi"
	"github.com/promptstudio/internal/infra"
	"github.com/promptstudio/internal/providers/gemini"
	"github.com/promptstudio/internal/session"
	"github.com/promptstudio/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	gateway, err := gemini.NewClient(ctx, gemini.Options{
		APIKey:     cfg.GeminiAPIKey,
		TextModel:  cfg.GeminiTextModel,
		ImageModel: cfg.GeminiImageModel,
		ChatModel:  cfg.GeminiChatModel,
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build gemini client")
	}

	var files *storage.FileStore
	if cfg.AssetDir != "" {
		files, err = storage.NewFileStore(cfg.AssetDir)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare asset directory")
		}
		logger.Info().Str("dir", files.BasePath()).Msg("asset export enabled")
	}

	sessions := session.NewStore(cfg.SessionTTL, &logger)
	sessions.StartJanitor(time.Minute)
	defer sessions.Close()

	app := handlers.NewApp(logger, gateway, sessions, files, cfg.ReanalyzeDebounce)
	router := httpapi.NewRouter(app, cfg)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
