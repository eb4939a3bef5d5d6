package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nguyentantai21042004/meeting-scribe/internal/audio"
	"github.com/nguyentantai21042004/meeting-scribe/internal/config"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/metrics"
	"github.com/nguyentantai21042004/meeting-scribe/internal/processor"
	"github.com/nguyentantai21042004/meeting-scribe/internal/redactor"
	"github.com/nguyentantai21042004/meeting-scribe/internal/storage"
	"github.com/nguyentantai21042004/meeting-scribe/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-scribe/internal/transcriber"
	"github.com/nguyentantai21042004/meeting-scribe/internal/watcher"
	"github.com/nguyentantai21042004/meeting-scribe/pkg/executor"
)

func main() {
	ctx := context.Background()

	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Meeting Transcription Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s, %d CPUs", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	log.Info(ctx, "Max concurrent jobs: %d", cfg.Performance.MaxConcurrent)

	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	m := metrics.NewMetrics()
	if cfg.Metrics.Addr != "" {
		go serveMetrics(ctx, cfg.Metrics.Addr, log)
	}

	// Wire the pipeline stages
	exec := executor.New()
	store := storage.NewLocal(log)
	normalizer := audio.NewNormalizer(exec, log, cfg.FFmpeg.BinaryPath, cfg.Paths.Temp,
		cfg.FFmpeg.SampleRate, cfg.FFmpeg.Channels, m)
	chunker := audio.NewChunker(cfg.Transcription.ChunkSeconds, cfg.Transcription.MaxPayloadBytes, log, m)
	client := transcriber.NewClient(cfg.Transcription, m)
	trans := transcriber.New(chunker, client, log, m)
	redact := redactor.New(cfg.Guardrail, log, m)

	var summarize summarizer.Summarizer
	if keys := geminiKeys(); len(keys) > 0 {
		summarize = summarizer.New(keys, cfg.Gemini.Model, log)
	} else {
		log.Warn(ctx, "GEMINI_API_KEYS not set, summaries will be skipped")
	}

	proc := processor.New(cfg, store, normalizer, trans, redact, summarize, log, m)

	w, err := watcher.New(cfg.Paths.Inbox, proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 1)
	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			errChan <- err
		}
	}()

	log.Info(ctx, "Pipeline ready. Monitoring: %s, output: %s", cfg.Paths.Inbox, cfg.Paths.Output)
	log.Info(ctx, "Press Ctrl+C to stop")

	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Watcher error: %v", err)
	}

	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	log.Info(ctx, "Pipeline stopped")
}

func configPath() string {
	if path := os.Getenv("SCRIBE_CONFIG"); path != "" {
		return path
	}
	return "config.yaml"
}

// geminiKeys reads the comma-separated API key list from the environment
func geminiKeys() []string {
	raw := os.Getenv("GEMINI_API_KEYS")
	if raw == "" {
		return nil
	}
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

func serveMetrics(ctx context.Context, addr string, log logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	log.Info(ctx, "Metrics listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error(ctx, "Metrics server error: %v", err)
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Inbox,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
