package processor

import (
	"github.com/nguyentantai21042004/meeting-scribe/internal/audio"
	"github.com/nguyentantai21042004/meeting-scribe/internal/config"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/metrics"
	"github.com/nguyentantai21042004/meeting-scribe/internal/redactor"
	"github.com/nguyentantai21042004/meeting-scribe/internal/storage"
	"github.com/nguyentantai21042004/meeting-scribe/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-scribe/internal/transcriber"
)

type implProcessor struct {
	cfg         *config.Config
	store       storage.Storage
	normalizer  *audio.Normalizer
	transcriber transcriber.Transcriber
	redactor    redactor.Redactor
	summarizer  summarizer.Summarizer
	logger      logger.Logger
	metrics     *metrics.Metrics
}

// New wires the pipeline stages into a Processor
func New(
	cfg *config.Config,
	store storage.Storage,
	normalizer *audio.Normalizer,
	trans transcriber.Transcriber,
	redact redactor.Redactor,
	summarize summarizer.Summarizer,
	log logger.Logger,
	m *metrics.Metrics,
) Processor {
	return &implProcessor{
		cfg:         cfg,
		store:       store,
		normalizer:  normalizer,
		transcriber: trans,
		redactor:    redact,
		summarizer:  summarize,
		logger:      log,
		metrics:     m,
	}
}
