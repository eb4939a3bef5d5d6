package audio

import (
	"bytes"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"wav riff header", []byte("RIFF$\x00\x00\x00WAVEfmt "), FormatWAV},
		{"mp3 id3 tag", []byte("ID3\x04\x00\x00\x00\x00\x00\x00"), FormatMP3},
		{"mp3 frame sync", []byte{0xFF, 0xFB, 0x90, 0x00}, FormatMP3},
		{"ogg header", []byte("OggS\x00\x02"), FormatOGG},
		{"mp4 ftyp after size field", []byte("\x20\x01\x02\x03ftypisom"), FormatMP4},
		{"mp4 triple null prefix", []byte{0x00, 0x00, 0x00, 0x20, 'f', 't', 'y', 'p'}, FormatMP4},
		{"empty input", nil, FormatUnknown},
		{"unrecognized bytes", []byte("hello world this is not audio"), FormatUnknown},
		{"ftyp beyond sniff window", append(bytes.Repeat([]byte{0x41}, 60), []byte("ftyp")...), FormatUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.data); got != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFormatDeterministic(t *testing.T) {
	// Same input must always classify the same way
	data := []byte("\x00\x00\x00\x18ftypmp42")
	first := DetectFormat(data)
	for i := 0; i < 10; i++ {
		if got := DetectFormat(data); got != first {
			t.Fatalf("DetectFormat() not deterministic: %v then %v", first, got)
		}
	}
}

func TestIsWAV(t *testing.T) {
	if !IsWAV([]byte("RIFFxxxxWAVE")) {
		t.Error("IsWAV() = false for RIFF data")
	}
	if IsWAV([]byte("ID3xxx")) {
		t.Error("IsWAV() = true for mp3 data")
	}
	if IsWAV(nil) {
		t.Error("IsWAV() = true for empty data")
	}
}
