package transcriber

import (
	"github.com/nguyentantai21042004/meeting-scribe/internal/audio"
	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/metrics"
)

// accountID is a fixed placeholder in the persisted transcript artifact;
// downstream consumers only require the field to be present
const accountID = "123456789012"

type implTranscriber struct {
	chunker *audio.Chunker
	client  Client
	logger  logger.Logger
	metrics *metrics.Metrics
}

// New creates a Transcriber that splits audio with the given chunker and
// recognizes each chunk through the given client
func New(chunker *audio.Chunker, client Client, log logger.Logger, m *metrics.Metrics) Transcriber {
	return &implTranscriber{
		chunker: chunker,
		client:  client,
		logger:  log,
		metrics: m,
	}
}
