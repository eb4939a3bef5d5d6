package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/metrics"
	"github.com/nguyentantai21042004/meeting-scribe/pkg/executor"
)

// fallbackSeconds caps the raw-payload fallback to a 30-second-equivalent
// byte budget so a malformed container cannot balloon memory
const fallbackSeconds = 30

// Normalizer converts non-WAV recordings into canonical PCM WAV bytes.
// Transcoding strategies are tried in order; each failure is isolated and
// logged, and only exhaustion of every strategy is an error.
type Normalizer struct {
	exec       executor.Executor
	logger     logger.Logger
	binaryPath string
	sampleRate int
	channels   int
	tempDir    string
	metrics    *metrics.Metrics
}

// NewNormalizer creates a Normalizer. binaryPath is the ffmpeg binary name
// or path from configuration; tempDir hosts the transient files transcoding
// needs.
func NewNormalizer(exec executor.Executor, log logger.Logger, binaryPath, tempDir string, sampleRate, channels int, m *metrics.Metrics) *Normalizer {
	if binaryPath == "" {
		binaryPath = "ffmpeg"
	}
	if sampleRate <= 0 {
		sampleRate = 44100
	}
	if channels <= 0 {
		channels = 2
	}
	return &Normalizer{
		exec:       exec,
		logger:     log,
		binaryPath: binaryPath,
		sampleRate: sampleRate,
		channels:   channels,
		tempDir:    tempDir,
		metrics:    m,
	}
}

// Normalize produces WAV bytes from a non-WAV recording
func (n *Normalizer) Normalize(ctx context.Context, data []byte, format Format) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no audio data to normalize")
	}

	n.logger.Info(ctx, "Normalizing %s input (%d bytes) to PCM WAV", format, len(data))

	strategies := []struct {
		name string
		fn   func(context.Context, []byte, Format) ([]byte, error)
	}{
		{"ffmpeg", n.transcodeDefault},
		{"ffmpeg-direct", n.transcodeDirect},
		{"synthetic-header", n.syntheticHeader},
	}

	var lastErr error
	for _, s := range strategies {
		out, err := s.fn(ctx, data, format)
		if err != nil {
			n.logger.Warn(ctx, "Normalization strategy %q failed: %v", s.name, err)
			lastErr = err
			continue
		}
		if s.name == "synthetic-header" {
			n.logger.Warn(ctx, "Transcoder unavailable, produced best-effort WAV from raw payload")
			if n.metrics != nil {
				n.metrics.NormalizationFallbacks.Inc()
			}
		}
		n.logger.Info(ctx, "Normalization strategy %q produced %d WAV bytes", s.name, len(out))
		return out, nil
	}

	return nil, fmt.Errorf("all normalization strategies failed: %w", lastErr)
}

// transcodeDefault invokes ffmpeg by its configured name
func (n *Normalizer) transcodeDefault(ctx context.Context, data []byte, format Format) ([]byte, error) {
	return n.transcode(ctx, n.binaryPath, data, format)
}

// transcodeDirect resolves the ffmpeg binary to an absolute path first,
// covering environments where the bare name is not directly runnable
func (n *Normalizer) transcodeDirect(ctx context.Context, data []byte, format Format) ([]byte, error) {
	path, err := n.exec.Look(n.binaryPath)
	if err != nil {
		return nil, err
	}
	return n.transcode(ctx, path, data, format)
}

func (n *Normalizer) transcode(ctx context.Context, binary string, data []byte, format Format) ([]byte, error) {
	inPath, cleanupIn, err := n.writeTemp(data, string(format))
	if err != nil {
		return nil, err
	}
	defer cleanupIn()

	outPath := strings.TrimSuffix(inPath, filepath.Ext(inPath)) + "_norm.wav"
	defer os.Remove(outPath)

	args := []string{
		"-i", inPath,
		"-vn",
		"-acodec", "pcm_s16le",
		"-ar", strconv.Itoa(n.sampleRate),
		"-ac", strconv.Itoa(n.channels),
		"-y",
		outPath,
	}

	if _, err := n.exec.Execute(ctx, binary, args...); err != nil {
		return nil, fmt.Errorf("ffmpeg transcode: %w", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read transcoded output: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("transcoded output is empty")
	}

	return out, nil
}

// syntheticHeader wraps the raw payload in a minimal RIFF/WAVE header.
// Container overhead is stripped heuristically when an mdat box marker is
// present, and the payload is capped to a 30-second-equivalent budget.
func (n *Normalizer) syntheticHeader(ctx context.Context, data []byte, format Format) ([]byte, error) {
	sampleRate, channels := n.probeProperties(ctx, data, format)
	bitsPerSample := 16

	payload := data
	if idx := bytes.Index(data, []byte("mdat")); idx >= 0 {
		// Skip the mdat marker and its size field
		start := idx + 8
		if start < len(data) {
			n.logger.Debug(ctx, "Found mdat box at offset %d, taking payload from %d", idx, start)
			payload = data[start:]
		}
	}

	maxSize := sampleRate * channels * bitsPerSample / 8 * fallbackSeconds
	if len(payload) > maxSize {
		payload = payload[:maxSize]
	}

	header := NewHeader(len(payload), sampleRate, channels, bitsPerSample)

	out := make([]byte, 0, len(header)+len(payload))
	out = append(out, header...)
	out = append(out, payload...)
	return out, nil
}

// probeProperties asks ffprobe for the real sample rate and channel count,
// falling back to the configured values when the probe is unavailable
func (n *Normalizer) probeProperties(ctx context.Context, data []byte, format Format) (int, int) {
	sampleRate := n.sampleRate
	channels := n.channels

	inPath, cleanup, err := n.writeTemp(data, string(format))
	if err != nil {
		return sampleRate, channels
	}
	defer cleanup()

	out, err := n.exec.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "stream=sample_rate,channels",
		"-of", "default=noprint_wrappers=1",
		inPath,
	)
	if err != nil {
		n.logger.Debug(ctx, "ffprobe unavailable, using configured audio properties: %v", err)
		return sampleRate, channels
	}

	for _, line := range strings.Split(out, "\n") {
		key, value, found := strings.Cut(strings.TrimSpace(line), "=")
		if !found {
			continue
		}
		v, err := strconv.Atoi(value)
		if err != nil || v <= 0 {
			continue
		}
		switch key {
		case "sample_rate":
			sampleRate = v
		case "channels":
			channels = v
		}
	}

	n.logger.Debug(ctx, "Probed audio properties: sample_rate=%d channels=%d", sampleRate, channels)
	return sampleRate, channels
}

// writeTemp persists bytes to a temp file and returns a cleanup that is
// safe to call on every exit path
func (n *Normalizer) writeTemp(data []byte, ext string) (string, func(), error) {
	if ext == "" || ext == string(FormatUnknown) {
		ext = "bin"
	}

	dir := n.tempDir
	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", nil, fmt.Errorf("create temp dir: %w", err)
		}
	}

	f, err := os.CreateTemp(dir, "normalize-*."+ext)
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}

	name := f.Name()
	return name, func() { os.Remove(name) }, nil
}
