package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// makeWAV builds a canonical WAV buffer with the given frame count filled
// with a repeating byte pattern
func makeWAV(t *testing.T, frames, sampleRate, channels, sampleWidth int) []byte {
	t.Helper()

	frameSize := channels * sampleWidth
	data := make([]byte, frames*frameSize)
	for i := range data {
		data[i] = byte(i % 251)
	}

	s := Stream{
		Channels:    channels,
		SampleWidth: sampleWidth,
		SampleRate:  sampleRate,
		Frames:      frames,
		Data:        data,
	}
	encoded, err := s.Encode()
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	return encoded
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		frames      int
		sampleRate  int
		channels    int
		sampleWidth int
	}{
		{"mono 16-bit 8kHz", 1600, 8000, 1, 2},
		{"stereo 16-bit 44.1kHz", 4410, 44100, 2, 2},
		{"mono 8-bit", 100, 16000, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := makeWAV(t, tt.frames, tt.sampleRate, tt.channels, tt.sampleWidth)

			decoded, err := DecodeStream(encoded)
			if err != nil {
				t.Fatalf("DecodeStream() error = %v", err)
			}

			if decoded.Frames != tt.frames {
				t.Errorf("Frames = %d, want %d", decoded.Frames, tt.frames)
			}
			if decoded.SampleRate != tt.sampleRate {
				t.Errorf("SampleRate = %d, want %d", decoded.SampleRate, tt.sampleRate)
			}
			if decoded.Channels != tt.channels {
				t.Errorf("Channels = %d, want %d", decoded.Channels, tt.channels)
			}
			if decoded.SampleWidth != tt.sampleWidth {
				t.Errorf("SampleWidth = %d, want %d", decoded.SampleWidth, tt.sampleWidth)
			}
			if len(decoded.Data) != tt.frames*tt.channels*tt.sampleWidth {
				t.Errorf("Data length = %d, want %d", len(decoded.Data), tt.frames*tt.channels*tt.sampleWidth)
			}
		})
	}
}

// withInfoChunk rebuilds a canonical WAV buffer in the layout ffmpeg's wav
// muxer emits: a LIST/INFO metadata chunk between fmt and data
func withInfoChunk(t *testing.T, canonical []byte) []byte {
	t.Helper()

	encoder := []byte("Lavf58.29.100\x00")
	list := []byte("LIST")
	list = binary.LittleEndian.AppendUint32(list, uint32(4+8+len(encoder)))
	list = append(list, "INFO"...)
	list = append(list, "ISFT"...)
	list = binary.LittleEndian.AppendUint32(list, uint32(len(encoder)))
	list = append(list, encoder...)

	out := make([]byte, 0, len(canonical)+len(list))
	out = append(out, canonical[:36]...) // RIFF header + fmt chunk
	out = append(out, list...)
	out = append(out, canonical[36:]...) // data chunk
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(out)-8))
	return out
}

func TestDecodeStreamSkipsMetadataChunks(t *testing.T) {
	canonical := makeWAV(t, 1600, 8000, 1, 2)
	tagged := withInfoChunk(t, canonical)

	want, err := DecodeStream(canonical)
	if err != nil {
		t.Fatalf("DecodeStream(canonical) error = %v", err)
	}
	got, err := DecodeStream(tagged)
	if err != nil {
		t.Fatalf("DecodeStream(tagged) error = %v", err)
	}

	if got.Frames != want.Frames || got.SampleRate != want.SampleRate ||
		got.Channels != want.Channels || got.SampleWidth != want.SampleWidth {
		t.Errorf("decoded properties differ: got %+v, want %+v", got, want)
	}
	if !bytes.Equal(got.Data, want.Data) {
		t.Error("decoded frame data differs from canonical decode")
	}
}

func TestDecodeStreamErrors(t *testing.T) {
	valid := makeWAV(t, 10, 8000, 1, 2)

	corrupt := func(offset int, b []byte) []byte {
		out := append([]byte(nil), valid...)
		copy(out[offset:], b)
		return out
	}

	tests := []struct {
		name string
		data []byte
	}{
		{"too short", valid[:20]},
		{"missing RIFF", corrupt(0, []byte("JUNK"))},
		{"missing WAVE", corrupt(8, []byte("EVAW"))},
		{"missing fmt", corrupt(12, []byte("xxx "))},
		{"missing data chunk", corrupt(36, []byte("atad"))},
		{"non-PCM format", corrupt(20, []byte{0x03, 0x00})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeStream(tt.data); err == nil {
				t.Error("DecodeStream() expected error, got nil")
			}
		})
	}
}

func TestDecodeStreamTruncatedData(t *testing.T) {
	// Header declares more payload than is present; the decoder trusts
	// the bytes actually there and drops the trailing partial frame
	full := makeWAV(t, 100, 8000, 2, 2)
	truncated := full[:len(full)-101]

	decoded, err := DecodeStream(truncated)
	if err != nil {
		t.Fatalf("DecodeStream() error = %v", err)
	}

	if decoded.Frames >= 100 {
		t.Errorf("Frames = %d, want fewer than declared 100", decoded.Frames)
	}
	if len(decoded.Data)%(decoded.Channels*decoded.SampleWidth) != 0 {
		t.Errorf("Data length %d is not frame-aligned", len(decoded.Data))
	}
}

func TestNewHeader(t *testing.T) {
	header := NewHeader(1000, 44100, 2, 16)

	if len(header) != HeaderSize {
		t.Fatalf("header length = %d, want %d", len(header), HeaderSize)
	}
	if !bytes.HasPrefix(header, []byte("RIFF")) {
		t.Error("header missing RIFF prefix")
	}
	if !bytes.Equal(header[8:12], []byte("WAVE")) {
		t.Error("header missing WAVE marker")
	}
	if !bytes.Equal(header[36:40], []byte("data")) {
		t.Error("header missing data marker")
	}
}

func TestStreamDuration(t *testing.T) {
	s := Stream{SampleRate: 8000, Frames: 12000}
	if got := s.Duration(); got != 1.5 {
		t.Errorf("Duration() = %v, want 1.5", got)
	}

	empty := Stream{}
	if got := empty.Duration(); got != 0 {
		t.Errorf("Duration() = %v, want 0 for empty stream", got)
	}
}
