package processor

import "context"

// Processor runs one recording through the full transcription pipeline
type Processor interface {
	Process(ctx context.Context, inputPath string) error
}
