package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/gg"
	"github.com/joho/godotenv"

	"adstudio/internal/catalog"
	"adstudio/internal/compositor"
	"adstudio/internal/generation"
	"adstudio/internal/http/handlers"
	httpapi "adstudio/internal/http/httpapi"
	"adstudio/internal/infra"
	"adstudio/internal/providers/genai"
	"adstudio/internal/providers/prompt"
	"adstudio/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)
	if cfg.RenderDebug {
		gg.SetLogger(slog.Default())
	}

	ctx := context.Background()

	store, closeStore, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open storage")
	}
	defer closeStore()

	gw, err := catalog.New(catalog.Options{Store: store, Logger: &logger})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build catalog")
	}

	gemini, err := genai.NewClient(ctx, genai.Options{
		APIKey:     cfg.GeminiAPIKey,
		BaseURL:    cfg.GeminiBaseURL,
		ImageModel: cfg.GeminiImageModel,
		TextModel:  cfg.GeminiTextModel,
		Logger:     &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build gemini client")
	}
	if gemini.Offline() {
		logger.Warn().Msg("GEMINI_API_KEY not set, generating synthetic backgrounds")
	}

	copywriter, err := buildCopywriter(cfg, gemini, logger)
	if err != nil {
		logger.Fatal().Err(err).Str("provider", cfg.CopyProvider).Msg("failed to build copywriter")
	}

	adapter, err := generation.New(generation.Options{
		Images:        gemini,
		Copywriter:    copywriter,
		RatePerMinute: cfg.GenerationPerMin,
		Logger:        &logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build generation adapter")
	}

	renderer := compositor.NewRenderer(compositor.Options{
		Fonts:  compositor.NewFontRegistry(cfg.FontDir, &logger),
		Images: compositor.NewImageCache(10 * time.Minute),
		Logger: &logger,
	})

	app := handlers.NewApp(handlers.Options{
		Catalog:       gw,
		Generator:     adapter,
		Exporter:      renderer,
		Sessions:      generation.NewSessions(30 * time.Minute),
		MaxAssetBytes: cfg.MaxAssetBytes,
		StoreDriver:   cfg.StoreDriver,
		Offline:       gemini.Offline(),
		Logger:        &logger,
	})

	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Logger:          logger,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("store", cfg.StoreDriver).
			Str("copy_provider", copywriter.Name()).
			Msg("API listening")
		if err := server.Start(); err != nil {
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

// buildCopywriter picks the copy provider. Gemini copy needs the remote API,
// so an offline client writes copy with the static provider.
func buildCopywriter(cfg *infra.Config, gemini *genai.Client, logger infra.Logger) (prompt.Copywriter, error) {
	switch cfg.CopyProvider {
	case "static":
		return prompt.NewStaticCopywriter(), nil
	case "openai":
		return prompt.NewOpenAICopywriter(prompt.OpenAIOptions{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
			OnWarning: func(reason, detail string) {
				logger.Warn().Str("reason", reason).Str("detail", detail).Msg("openai copywriter")
			},
		})
	case "gemini":
		if gemini.Offline() {
			return prompt.NewStaticCopywriter(), nil
		}
		return prompt.NewGeminiCopywriter(gemini)
	}
	return nil, fmt.Errorf("unsupported copy provider %q", cfg.CopyProvider)
}
