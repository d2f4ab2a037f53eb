// Command tripweaver runs the travel-planning assistant service.
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

	"github.com/tripweaver-ai/tripweaver/blog"
	"github.com/tripweaver-ai/tripweaver/internal/config"
	"github.com/tripweaver-ai/tripweaver/log"
	"github.com/tripweaver-ai/tripweaver/model/openai"
	"github.com/tripweaver-ai/tripweaver/planner"
	"github.com/tripweaver-ai/tripweaver/prompt"
	"github.com/tripweaver-ai/tripweaver/server"
	"github.com/tripweaver-ai/tripweaver/telemetry"
	"github.com/tripweaver-ai/tripweaver/tool/places"
	"github.com/tripweaver-ai/tripweaver/tool/weather"
)

func main() {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cleanTelemetry, err := telemetry.Start(ctx,
		telemetry.WithServiceName("tripweaver"),
		telemetry.WithEndpoint(cfg.TraceEndpoint),
		telemetry.WithProtocol(cfg.TraceProtocol),
	)
	if err != nil {
		log.Warnf("tracing disabled: %v", err)
		cleanTelemetry = func() error { return nil }
	}
	defer func() {
		if err := cleanTelemetry(); err != nil {
			log.Warnf("telemetry shutdown: %v", err)
		}
	}()

	prompts, err := prompt.NewSeededManager()
	if err != nil {
		log.Fatalf("seed prompt templates: %v", err)
	}

	completionModel := openai.New(cfg.ModelName,
		openai.WithAPIKey(cfg.OpenAIAPIKey),
		openai.WithBaseURL(cfg.OpenAIBaseURL),
	)

	pipeline := blog.NewPipeline(blog.NewMockFetcher(), blog.NewKeywordAnalyzer())
	weatherTool := weather.NewTool(weather.NewMockSource())
	placesTool := places.NewTool(pipeline)

	engine := planner.New(completionModel, prompts, weatherTool, placesTool)
	srv := server.New(engine, engine)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("tripweaver listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("http server: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Errorf("shutdown: %v", err)
		os.Exit(1)
	}
}
