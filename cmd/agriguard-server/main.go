// The agriguard-server command runs the AgriGuard backend: plant
// diagnosis, weather intelligence, IPM planning, and the conversational
// advisor, served over HTTP for the terminal client and anything else
// that speaks the API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"agriguard/agronomist"
	"agriguard/diagnosis"
	"agriguard/ipm"
	"agriguard/provider"
	"agriguard/server"
	"agriguard/weather"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	chain, err := provider.NewChain(provider.ChainConfig{
		GroqAPIKey:        cfg.GroqAPIKey,
		GoogleAPIKey:      cfg.GoogleAPIKey,
		AnthropicAPIKey:   cfg.AnthropicAPIKey,
		OllamaBaseURL:     cfg.OllamaBaseURL,
		OllamaVisionModel: cfg.OllamaVisionModel,
		OllamaLLMModel:    cfg.OllamaLLMModel,
		Pinned:            cfg.AIProvider,
	})
	if err != nil {
		slog.Error("failed to configure AI providers", "error", err)
		os.Exit(1)
	}

	history, err := agronomist.NewBoltHistory(filepath.Join(cfg.DataDir, "history.db"))
	if err != nil {
		slog.Error("failed to open history store", "error", err)
		os.Exit(1)
	}
	defer history.Close()

	weatherClient := weather.NewClient(cfg.WeatherAPIBase)
	diag := diagnosis.NewService(chain)
	ipmSvc := ipm.NewService(chain, weatherClient)
	agro := agronomist.NewService(chain, diag, ipmSvc, weatherClient, history)

	srv := server.New(server.Deps{
		Cfg:        cfg,
		Chain:      chain,
		Weather:    weatherClient,
		Diagnosis:  diag,
		IPM:        ipmSvc,
		Agronomist: agro,
	})

	if ollama := chain.Ollama(); ollama.Ping(ctx) == nil {
		models, _ := ollama.ListModels(ctx)
		slog.Info("ollama connected", "models", models)
	} else {
		slog.Warn("ollama not running, falling back to cloud providers when configured")
	}

	httpServer := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "port", cfg.Port, "primary_provider", chain.Primary(ctx))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped gracefully")
}
