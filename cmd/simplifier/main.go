package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"simplifier/internal/config"
	"simplifier/internal/domain"
	"simplifier/internal/embedding"
	"simplifier/internal/loader"
	"simplifier/internal/simplifier"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// session is the engine over freshly loaded sources.
type session struct {
	engine *simplifier.Engine
	result loader.Result
}

// openSession loads both sources in the background and blocks until they are ready.
func openSession(ctx context.Context, cfg *config.AppConfig, logger *slog.Logger) (*session, error) {
	if cfg.Sources.Embeddings == "" {
		return nil, fmt.Errorf("no embeddings file set (use --embeddings or %s)", config.EnvEmbeddings)
	}
	if cfg.Sources.Words == "" {
		return nil, fmt.Errorf("no words file set (use --words or %s)", config.EnvWords)
	}
	store := embedding.NewStore(
		embedding.WithLogger(logger),
		embedding.WithPreviewSize(previewSize(cfg.Simplifier.PreviewSize)),
	)
	task := loader.New(store, loader.Sources{Embeddings: cfg.Sources.Embeddings, Words: cfg.Sources.Words})
	start := time.Now()
	task.Start(ctx)
	res, err := task.Wait()
	if err != nil {
		return nil, err
	}
	logPreview(logger, res.Embeddings)
	logger.Info("sources loaded",
		"embeddings", res.Embeddings.Loaded,
		"simple_words", res.Simple.Loaded,
		"elapsed", time.Since(start).Round(time.Millisecond))

	engine, err := simplifier.FromStore(store,
		simplifier.WithLogger(logger),
		simplifier.WithThresholds(cfg.Simplifier.Floor, cfg.Simplifier.KeepThreshold),
	)
	if err != nil {
		return nil, err
	}
	return &session{engine: engine, result: res}, nil
}

// previewSize maps the config value, where 0 disables the preview, onto ParseOptions.
func previewSize(n int) int {
	if n == 0 {
		return -1
	}
	return n
}

func logPreview(logger *slog.Logger, report domain.LoadReport) {
	for _, e := range report.Preview {
		logger.Debug("embedding", "entry", fmt.Sprintf("%s -> %v", e.Word, []float64(e.Vector)))
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var lvl slog.Level
	switch cfg.Level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
