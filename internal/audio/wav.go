package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// HeaderSize is the size of a canonical RIFF/WAVE header with a 16-byte
// fmt chunk immediately followed by the data chunk.
const HeaderSize = 44

// WAVHeader represents the header structure of a canonical PCM WAV file
type WAVHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // File size - 8 bytes
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16  // Number of channels
	SampleRate    uint32  // Sample rate
	ByteRate      uint32  // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16  // NumChannels * BitsPerSample / 8
	BitsPerSample uint16  // Bits per sample
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32  // Number of bytes in the data
}

// Stream is the canonical decoded form of a WAV byte buffer.
// Data holds raw interleaved frames; its length is always a multiple of
// Channels * SampleWidth.
type Stream struct {
	Channels    int
	SampleWidth int // bytes per sample
	SampleRate  int
	Frames      int
	Data        []byte
}

// Duration returns the stream length in seconds
func (s *Stream) Duration() float64 {
	if s.SampleRate == 0 {
		return 0
	}
	return float64(s.Frames) / float64(s.SampleRate)
}

// frameSize returns bytes per frame
func (s *Stream) frameSize() int {
	return s.Channels * s.SampleWidth
}

// fmtChunk is the 16-byte PCM portion of a fmt chunk body
type fmtChunk struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// DecodeStream parses WAV bytes into a Stream. Chunks between fmt and
// data (the LIST/INFO metadata ffmpeg's muxer writes, fact chunks) are
// skipped, so both canonical 44-byte files and real encoder output decode.
func DecodeStream(data []byte) (*Stream, error) {
	if len(data) < HeaderSize {
		return nil, fmt.Errorf("WAV data too short: need at least %d bytes, got %d", HeaderSize, len(data))
	}
	if string(data[0:4]) != "RIFF" {
		return nil, fmt.Errorf("invalid WAV file: missing RIFF header")
	}
	if string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("invalid WAV file: missing WAVE format")
	}

	var format *fmtChunk
	offset := 12
	for offset+8 <= len(data) {
		id := string(data[offset : offset+4])
		size := int(binary.LittleEndian.Uint32(data[offset+4 : offset+8]))
		body := offset + 8

		switch id {
		case "fmt ":
			if size < 16 || body+16 > len(data) {
				return nil, fmt.Errorf("invalid WAV file: malformed fmt chunk")
			}
			var fc fmtChunk
			if err := binary.Read(bytes.NewReader(data[body:body+16]), binary.LittleEndian, &fc); err != nil {
				return nil, fmt.Errorf("read fmt chunk: %w", err)
			}
			format = &fc
		case "data":
			if format == nil {
				return nil, fmt.Errorf("invalid WAV file: missing fmt chunk")
			}
			return decodePCM(format, data[body:], size)
		}

		// Chunk bodies are word aligned; odd sizes carry a pad byte
		offset = body + size
		if size%2 == 1 {
			offset++
		}
	}

	return nil, fmt.Errorf("invalid WAV file: missing data chunk")
}

func decodePCM(format *fmtChunk, payload []byte, declaredSize int) (*Stream, error) {
	if format.AudioFormat != 1 {
		return nil, fmt.Errorf("unsupported audio format: %d (only PCM is supported)", format.AudioFormat)
	}
	if format.NumChannels == 0 {
		return nil, fmt.Errorf("invalid channel count: 0")
	}
	if format.SampleRate == 0 {
		return nil, fmt.Errorf("invalid sample rate: 0")
	}
	if format.BitsPerSample == 0 || format.BitsPerSample%8 != 0 {
		return nil, fmt.Errorf("unsupported bit depth: %d", format.BitsPerSample)
	}

	sampleWidth := int(format.BitsPerSample) / 8
	frameSize := int(format.NumChannels) * sampleWidth

	dataSize := declaredSize
	if dataSize > len(payload) {
		// Truncated file or fallback header wrapped around raw bytes;
		// trust the bytes actually present
		dataSize = len(payload)
	}
	// Discard any trailing partial frame
	dataSize -= dataSize % frameSize

	return &Stream{
		Channels:    int(format.NumChannels),
		SampleWidth: sampleWidth,
		SampleRate:  int(format.SampleRate),
		Frames:      dataSize / frameSize,
		Data:        payload[:dataSize],
	}, nil
}

// Encode serializes the stream as an independently decodable WAV buffer
func (s *Stream) Encode() ([]byte, error) {
	if s.Channels <= 0 || s.SampleWidth <= 0 || s.SampleRate <= 0 {
		return nil, fmt.Errorf("invalid stream parameters: channels=%d width=%d rate=%d",
			s.Channels, s.SampleWidth, s.SampleRate)
	}
	if len(s.Data)%s.frameSize() != 0 {
		return nil, fmt.Errorf("frame data length %d is not a multiple of frame size %d",
			len(s.Data), s.frameSize())
	}

	header := NewHeader(len(s.Data), s.SampleRate, s.Channels, s.SampleWidth*8)

	out := make([]byte, 0, HeaderSize+len(s.Data))
	out = append(out, header...)
	out = append(out, s.Data...)
	return out, nil
}

// NewHeader builds a canonical 44-byte RIFF/WAVE header for a PCM payload
// of dataSize bytes
func NewHeader(dataSize, sampleRate, channels, bitsPerSample int) []byte {
	header := WAVHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     uint32(36 + dataSize),
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1, // PCM
		NumChannels:   uint16(channels),
		SampleRate:    uint32(sampleRate),
		ByteRate:      uint32(sampleRate * channels * bitsPerSample / 8),
		BlockAlign:    uint16(channels * bitsPerSample / 8),
		BitsPerSample: uint16(bitsPerSample),
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: uint32(dataSize),
	}

	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize))
	// Write cannot fail on a bytes.Buffer
	_ = binary.Write(buf, binary.LittleEndian, header)
	return buf.Bytes()
}
