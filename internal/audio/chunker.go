package audio

import (
	"context"
	"fmt"
	"math"

	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
	"github.com/nguyentantai21042004/meeting-scribe/internal/metrics"
)

// Chunk is an independently decodable WAV slice tagged with its position
// in the source stream
type Chunk struct {
	Index  int
	Frames int
	Data   []byte
}

// Chunker splits a canonical WAV stream into payload-bounded chunks
type Chunker struct {
	chunkSeconds    int
	maxPayloadBytes int
	logger          logger.Logger
	metrics         *metrics.Metrics
}

// NewChunker creates a Chunker with the nominal chunk duration and the
// maximum encoded size a single chunk may reach
func NewChunker(chunkSeconds, maxPayloadBytes int, log logger.Logger, m *metrics.Metrics) *Chunker {
	if chunkSeconds <= 0 {
		chunkSeconds = 30
	}
	if maxPayloadBytes <= 0 {
		maxPayloadBytes = 2 * 1024 * 1024
	}
	return &Chunker{
		chunkSeconds:    chunkSeconds,
		maxPayloadBytes: maxPayloadBytes,
		logger:          log,
		metrics:         m,
	}
}

// ChunkSeconds returns the nominal chunk duration used for timing offsets
func (c *Chunker) ChunkSeconds() int {
	return c.chunkSeconds
}

// Split decodes WAV bytes and slices them into self-contained WAV chunks.
// A failure decoding the stream is fatal; a failure on an individual chunk
// is logged and the chunk skipped. Chunks holding no audio frames are
// discarded.
func (c *Chunker) Split(ctx context.Context, data []byte) ([]Chunk, error) {
	stream, err := DecodeStream(data)
	if err != nil {
		return nil, fmt.Errorf("decode WAV stream: %w", err)
	}

	c.logger.Debug(ctx, "WAV properties: channels=%d width=%d rate=%d frames=%d",
		stream.Channels, stream.SampleWidth, stream.SampleRate, stream.Frames)

	framesPerChunk := c.framesPerChunk(ctx, stream)
	if framesPerChunk <= 0 {
		return nil, fmt.Errorf("payload limit %d too small for a single frame", c.maxPayloadBytes)
	}

	nChunks := int(math.Ceil(float64(stream.Frames) / float64(framesPerChunk)))
	c.logger.Info(ctx, "Splitting audio into %d chunks (%d frames per chunk)", nChunks, framesPerChunk)

	frameSize := stream.frameSize()
	chunks := make([]Chunk, 0, nChunks)

	for i := 0; i < nChunks; i++ {
		start := i * framesPerChunk
		end := start + framesPerChunk
		if end > stream.Frames {
			end = stream.Frames
		}

		slice := Stream{
			Channels:    stream.Channels,
			SampleWidth: stream.SampleWidth,
			SampleRate:  stream.SampleRate,
			Frames:      end - start,
			Data:        stream.Data[start*frameSize : end*frameSize],
		}

		encoded, err := slice.Encode()
		if err != nil {
			c.logger.Warn(ctx, "Skipping chunk %d: %v", i, err)
			if c.metrics != nil {
				c.metrics.ChunksSkipped.Inc()
			}
			continue
		}

		// Header with no audio frames occurs at stream-length boundaries
		if len(encoded) <= HeaderSize {
			c.logger.Debug(ctx, "Discarding empty chunk %d (%d bytes)", i, len(encoded))
			continue
		}

		chunks = append(chunks, Chunk{
			Index:  i,
			Frames: end - start,
			Data:   encoded,
		})
	}

	return chunks, nil
}

// framesPerChunk derives the per-chunk frame count, shrinking the nominal
// duration with an 80% safety margin when a chunk's estimated encoded size
// would exceed the payload limit
func (c *Chunker) framesPerChunk(ctx context.Context, stream *Stream) int {
	duration := float64(c.chunkSeconds)
	frames := c.chunkSeconds * stream.SampleRate

	estimated := frames*stream.frameSize() + HeaderSize
	if estimated > c.maxPayloadBytes {
		ratio := float64(c.maxPayloadBytes) / float64(estimated)
		adjusted := duration * ratio * 0.8
		frames = int(adjusted * float64(stream.SampleRate))
		c.logger.Info(ctx, "Adjusted chunk duration to %.2fs to keep chunks under %d bytes",
			adjusted, c.maxPayloadBytes)
	}

	return frames
}
