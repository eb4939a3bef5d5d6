package audio

import "bytes"

// Format identifies the container type of an uploaded recording
type Format string

const (
	FormatWAV     Format = "wav"
	FormatMP3     Format = "mp3"
	FormatMP4     Format = "mp4"
	FormatOGG     Format = "ogg"
	FormatUnknown Format = "unknown"
)

// sniffWindow is how far into the buffer the ftyp marker may appear.
// MP4 files carry it after a variable-length box size field.
const sniffWindow = 50

type signature struct {
	magic  []byte
	format Format
	// scan matches the magic anywhere within the sniff window instead of
	// only at the start of the buffer
	scan bool
}

// signatures is the authoritative table, first match wins
var signatures = []signature{
	{magic: []byte("RIFF"), format: FormatWAV},
	{magic: []byte{0xFF, 0xFB}, format: FormatMP3},
	{magic: []byte{0x00, 0x00, 0x00}, format: FormatMP4},
	{magic: []byte("ftyp"), format: FormatMP4, scan: true},
	{magic: []byte("ID3"), format: FormatMP3},
	{magic: []byte("OggS"), format: FormatOGG},
}

// DetectFormat classifies raw bytes by magic-byte signature.
// It is pure and deterministic; unrecognized input yields FormatUnknown.
func DetectFormat(data []byte) Format {
	window := data
	if len(window) > sniffWindow {
		window = window[:sniffWindow]
	}

	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig.magic) {
			return sig.format
		}
		if sig.scan && bytes.Contains(window, sig.magic) {
			return sig.format
		}
	}

	return FormatUnknown
}

// IsWAV reports whether the data already carries a RIFF header
func IsWAV(data []byte) bool {
	return bytes.HasPrefix(data, []byte("RIFF"))
}
