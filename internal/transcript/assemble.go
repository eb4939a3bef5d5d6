package transcript

import (
	"math"
	"strconv"
	"strings"
)

// trailingPunctuation are the symbols emitted as standalone punctuation
// items when they end a word
const trailingPunctuation = ",.?!;:"

// ChunkWindow is one chunk's recognized text with its approximate time
// window in the source recording
type ChunkWindow struct {
	Index int
	Start float64
	End   float64
	Text  string
}

// BuildItems distributes the words of a text evenly across a time window.
// Each word becomes a pronunciation item; a trailing punctuation character
// additionally becomes a timing-less punctuation item. Word order matches
// audible order.
func BuildItems(text string, start, end float64) []Item {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	wordDuration := (end - start) / float64(len(words))

	items := make([]Item, 0, len(words))
	for i, word := range words {
		wordStart := start + float64(i)*wordDuration
		wordEnd := wordStart + wordDuration

		content := word
		var punctuation string
		if last := word[len(word)-1]; len(word) > 1 && strings.IndexByte(trailingPunctuation, last) >= 0 {
			content = word[:len(word)-1]
			punctuation = string(last)
		}

		items = append(items, Item{
			StartTime:    formatSeconds(wordStart),
			EndTime:      formatSeconds(wordEnd),
			Alternatives: []Alternative{{Content: content}},
			Type:         TypePronunciation,
		})

		if punctuation != "" {
			items = append(items, Item{
				Alternatives: []Alternative{{Content: punctuation}},
				Type:         TypePunctuation,
			})
		}
	}

	return items
}

// Assemble converts per-chunk texts and timings into a complete transcript
// document with one synthetic speaker segment per chunk
func Assemble(jobName, accountID string, chunks []ChunkWindow) *Document {
	var (
		texts    []string
		items    []Item
		segments []Segment
	)

	for _, chunk := range chunks {
		texts = append(texts, chunk.Text)

		chunkItems := BuildItems(chunk.Text, chunk.Start, chunk.End)
		items = append(items, chunkItems...)

		segment := Segment{
			StartTime:    formatSeconds(chunk.Start),
			EndTime:      formatSeconds(chunk.End),
			SpeakerLabel: DefaultSpeaker,
		}
		for _, item := range chunkItems {
			if item.Type != TypePronunciation {
				continue
			}
			segment.Items = append(segment.Items, SegmentItem{
				StartTime:    item.StartTime,
				EndTime:      item.EndTime,
				SpeakerLabel: DefaultSpeaker,
			})
		}
		segments = append(segments, segment)
	}

	return &Document{
		JobName:   jobName,
		AccountID: accountID,
		Results: Results{
			Transcripts: []TranscriptText{{Transcript: strings.Join(texts, " ")}},
			Items:       items,
			SpeakerLabels: SpeakerLabels{
				Speakers: 1,
				Segments: segments,
			},
		},
		Status: "COMPLETED",
	}
}

// formatSeconds renders a timestamp rounded to millisecond precision
func formatSeconds(v float64) string {
	return strconv.FormatFloat(math.Round(v*1000)/1000, 'f', -1, 64)
}
