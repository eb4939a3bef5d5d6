package transcriber

import (
	"context"

	"github.com/nguyentantai21042004/meeting-scribe/internal/transcript"
)

// Transcriber converts normalized WAV audio into a transcript document
type Transcriber interface {
	Transcribe(ctx context.Context, jobName string, wavData []byte) (*transcript.Document, error)
}

// Client invokes the remote speech-recognition endpoint for one chunk
type Client interface {
	Recognize(ctx context.Context, chunkData []byte) (Result, error)
}

// Result is one chunk's recognition outcome. LowConfidence marks text
// coerced from an unexpected response shape.
type Result struct {
	Text          string
	LowConfidence bool
}
