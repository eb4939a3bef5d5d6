package redactor

import (
	"net/http"
	"time"

	"github.com/nguyentantai21042004/meeting-scribe/internal/config"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/metrics"
)

type implRedactor struct {
	endpoint      string
	guardrailID   string
	version       string
	regexFallback bool
	httpClient    *http.Client
	logger        logger.Logger
	metrics       *metrics.Metrics
}

// New creates a Redactor backed by the configured guardrail service
func New(cfg config.GuardrailConfig, log logger.Logger, m *metrics.Metrics) Redactor {
	version := cfg.Version
	if version == "" {
		version = "DRAFT"
	}
	return &implRedactor{
		endpoint:      cfg.Endpoint,
		guardrailID:   cfg.ID,
		version:       version,
		regexFallback: cfg.RegexFallback,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		logger:  log,
		metrics: m,
	}
}
