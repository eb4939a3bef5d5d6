package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/meeting-scribe/internal/audio"
	"github.com/nguyentantai21042004/meeting-scribe/internal/transcript"
)

// Process orchestrates the entire transcription pipeline for one recording
func (p *implProcessor) Process(ctx context.Context, inputPath string) error {
	startTime := time.Now()
	container := filepath.Dir(inputPath)
	fileName := filepath.Base(inputPath)
	baseName := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	jobName := "Transcription-Job-" + baseName

	if p.metrics != nil {
		p.metrics.JobsStarted.Inc()
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting job %s: %s", jobName, inputPath)
	p.logger.Info(ctx, "========================================")

	err := p.run(ctx, container, fileName, baseName, jobName)

	duration := time.Since(startTime)
	if p.metrics != nil {
		p.metrics.JobDuration.Observe(duration.Seconds())
	}

	if err != nil {
		if p.metrics != nil {
			p.metrics.JobsFailed.Inc()
		}
		return fmt.Errorf("job %s: %w", jobName, err)
	}

	if p.metrics != nil {
		p.metrics.JobsCompleted.Inc()
	}
	p.logger.Info(ctx, "Job %s completed in %s", jobName, duration)
	return nil
}

func (p *implProcessor) run(ctx context.Context, container, fileName, baseName, jobName string) error {
	data, err := p.store.Read(ctx, container, fileName)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	// Step 1: detect the container format and normalize to canonical WAV
	wav, err := p.prepareAudio(ctx, data, fileName)
	if err != nil {
		return err
	}

	// Step 2: chunked transcription against the speech endpoint
	doc, err := p.transcriber.Transcribe(ctx, jobName, wav)
	if err != nil {
		return fmt.Errorf("transcribe: %w", err)
	}

	if err := p.persistTranscript(ctx, baseName, doc); err != nil {
		return err
	}

	// Step 3: merge diarization segments into speaker-attributed lines
	lines := transcript.MergeLines(doc)
	rendered := transcript.RenderLines(lines)
	if err := p.persistSpeakerLines(ctx, baseName, rendered); err != nil {
		return err
	}

	// Step 4: redact, summarize, redact again
	redacted := p.redactor.Redact(ctx, rendered)
	if redacted.Changed {
		p.logger.Info(ctx, "Sensitive content was redacted from transcript")
	}

	if p.summarizer == nil {
		p.logger.Warn(ctx, "No summarizer configured, skipping summary generation")
	} else {
		summary, err := p.summarizer.Summarize(ctx, redacted.Text)
		if err != nil {
			return fmt.Errorf("summarize: %w", err)
		}

		final := p.redactor.Redact(ctx, summary)
		if final.Changed {
			p.logger.Info(ctx, "Sensitive content was redacted from summary")
		}

		summaryID := uuid.NewString()
		if err := p.persistSummary(ctx, baseName, summaryID, final.Text); err != nil {
			return err
		}
	}

	// Step 5: archive the input so it is not picked up again
	p.archiveInput(ctx, container, fileName)

	return nil
}

// prepareAudio sniffs the payload format and converts anything that is not
// already canonical WAV. An unrecognized format fails the job.
func (p *implProcessor) prepareAudio(ctx context.Context, data []byte, fileName string) ([]byte, error) {
	format := audio.DetectFormat(data)
	p.logger.Info(ctx, "Detected format for %s: %s", fileName, format)

	switch {
	case format == audio.FormatUnknown:
		return nil, fmt.Errorf("unsupported media format")
	case format == audio.FormatWAV:
		return data, nil
	default:
		wav, err := p.normalizer.Normalize(ctx, data, format)
		if err != nil {
			return nil, fmt.Errorf("normalize audio: %w", err)
		}
		return wav, nil
	}
}
