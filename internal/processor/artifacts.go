package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/nguyentantai21042004/meeting-scribe/internal/summarizer"
	"github.com/nguyentantai21042004/meeting-scribe/internal/transcript"
)

// persistTranscript writes the raw transcript document as JSON
func (p *implProcessor) persistTranscript(ctx context.Context, baseName string, doc *transcript.Document) error {
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal transcript: %w", err)
	}

	key := "Transcript-for-" + baseName + ".json"
	if err := p.store.Write(ctx, p.cfg.Paths.Output, key, payload); err != nil {
		return fmt.Errorf("persist transcript: %w", err)
	}

	p.logger.Info(ctx, "Transcript written: %s", key)
	return nil
}

// persistSpeakerLines writes the merged speaker-attributed lines
func (p *implProcessor) persistSpeakerLines(ctx context.Context, baseName, rendered string) error {
	key := baseName + "-speaker-lines.txt"
	if err := p.store.Write(ctx, p.cfg.Paths.Output, key, []byte(rendered)); err != nil {
		return fmt.Errorf("persist speaker lines: %w", err)
	}

	p.logger.Info(ctx, "Speaker lines written: %s", key)
	return nil
}

// persistSummary writes the redacted summary as both plain text and docx
func (p *implProcessor) persistSummary(ctx context.Context, baseName, summaryID, summary string) error {
	txtKey := "Summary-" + summaryID + ".txt"
	if err := p.store.Write(ctx, p.cfg.Paths.Output, txtKey, []byte(summary)); err != nil {
		return fmt.Errorf("persist summary: %w", err)
	}

	docxKey := "Summary-" + summaryID + ".docx"
	docxPath := filepath.Join(p.cfg.Paths.Output, docxKey)
	if err := summarizer.WriteDocx("Meeting Summary: "+baseName, summary, docxPath); err != nil {
		// The text artifact already landed; a docx failure is cosmetic
		p.logger.Warn(ctx, "Failed to write summary docx %s: %v", docxKey, err)
		return nil
	}

	p.logger.Info(ctx, "Summary written: %s, %s", txtKey, docxKey)
	return nil
}

// archiveInput moves the processed recording out of the inbox. Failure is
// logged, not fatal; the artifacts already exist.
func (p *implProcessor) archiveInput(ctx context.Context, container, fileName string) {
	if p.cfg.Paths.Archived == "" {
		return
	}
	if err := p.store.Move(ctx, container, fileName, p.cfg.Paths.Archived, fileName); err != nil {
		p.logger.Warn(ctx, "Failed to archive %s: %v", fileName, err)
		return
	}
	p.logger.Info(ctx, "Archived input: %s", fileName)
}
