package summarizer

import (
	"sync"

	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
)

type implSummarizer struct {
	apiKeys []string
	logger  logger.Logger
	model   string

	// mu guards currentKey; Summarize runs from concurrent jobs
	mu         sync.Mutex
	currentKey int
}

// New creates a Summarizer that rotates through the supplied Gemini API keys
func New(apiKeys []string, model string, log logger.Logger) Summarizer {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &implSummarizer{
		apiKeys: apiKeys,
		logger:  log,
		model:   model,
	}
}
