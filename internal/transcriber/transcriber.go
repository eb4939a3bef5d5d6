package transcriber

import (
	"context"
	"fmt"

	"github.com/nguyentantai21042004/meeting-scribe/internal/transcript"
)

// Transcribe splits WAV audio into chunks, recognizes them strictly in
// sequence, and assembles the per-chunk texts into a transcript document.
// A single failed endpoint invocation aborts the whole run; there is no
// partial-transcript output.
func (t *implTranscriber) Transcribe(ctx context.Context, jobName string, wavData []byte) (*transcript.Document, error) {
	chunks, err := t.chunker.Split(ctx, wavData)
	if err != nil {
		return nil, fmt.Errorf("split audio: %w", err)
	}
	if len(chunks) == 0 {
		return nil, fmt.Errorf("audio produced no transcribable chunks")
	}

	if t.metrics != nil {
		t.metrics.ChunksCreated.Add(float64(len(chunks)))
	}

	// Offsets advance by the nominal chunk duration per chunk, not by each
	// chunk's decoded length. When adaptive shrinking occurred the offsets
	// are approximate.
	nominal := float64(t.chunker.ChunkSeconds())

	windows := make([]transcript.ChunkWindow, 0, len(chunks))
	for i, chunk := range chunks {
		t.logger.Info(ctx, "Transcribing chunk %d/%d (%d bytes)", i+1, len(chunks), len(chunk.Data))

		result, err := t.client.Recognize(ctx, chunk.Data)
		if err != nil {
			return nil, fmt.Errorf("transcribe chunk %d: %w", i+1, err)
		}
		if result.LowConfidence {
			t.logger.Warn(ctx, "Chunk %d returned an unexpected response shape, using coerced text", i+1)
		}

		start := float64(i) * nominal
		windows = append(windows, transcript.ChunkWindow{
			Index: i,
			Start: start,
			End:   start + nominal,
			Text:  result.Text,
		})
	}

	doc := transcript.Assemble(jobName, accountID, windows)
	t.logger.Info(ctx, "Transcription complete: %d chunks, %d items",
		len(windows), len(doc.Results.Items))

	return doc, nil
}
