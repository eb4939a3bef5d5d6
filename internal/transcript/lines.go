package transcript

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Line is one contiguous run of a single speaker
type Line struct {
	Speaker   string
	Text      string
	StartTime float64
}

// MergeLines folds speaker-labelled items into coherent lines ordered by
// time. Punctuation items attach to the current line without a speaker
// lookup; a pronunciation whose speaker differs from the running one
// flushes the line in progress. Input segments may come from a real
// diarization engine or the synthetic assembler.
func MergeLines(doc *Document) []Line {
	speakerAt := make(map[string]string)
	for _, segment := range doc.Results.SpeakerLabels.Segments {
		for _, item := range segment.Items {
			speakerAt[item.StartTime] = item.SpeakerLabel
		}
	}

	var (
		lines     []Line
		buffer    strings.Builder
		speaker   string
		lineStart float64
	)

	flush := func() {
		if speaker == "" && buffer.Len() == 0 {
			return
		}
		lines = append(lines, Line{
			Speaker:   speaker,
			Text:      buffer.String(),
			StartTime: lineStart,
		})
	}

	for _, item := range doc.Results.Items {
		content := item.Content()

		if item.StartTime == "" {
			if item.Type == TypePunctuation {
				buffer.WriteString(content)
			}
			continue
		}

		current, ok := speakerAt[item.StartTime]
		if !ok {
			// Unattributed word; treat it as a continuation
			current = speaker
			if current == "" {
				current = DefaultSpeaker
			}
		}

		start, _ := strconv.ParseFloat(item.StartTime, 64)

		switch {
		case speaker == "":
			// First pronunciation: open the initial line without
			// flushing an empty buffer
			speaker = current
			lineStart = start
			buffer.WriteString(content)
		case current != speaker:
			flush()
			speaker = current
			lineStart = start
			buffer.Reset()
			buffer.WriteString(content)
		default:
			buffer.WriteString(" ")
			buffer.WriteString(content)
		}
	}

	// The last line never sees a speaker transition
	flush()

	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].StartTime < lines[j].StartTime
	})

	return lines
}

// RenderLines formats lines as blank-line separated speaker turns:
// [H:MM:SS] speaker: text
func RenderLines(lines []Line) string {
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		rendered = append(rendered, fmt.Sprintf("[%s] %s: %s",
			formatClock(line.StartTime), line.Speaker, line.Text))
	}
	return strings.Join(rendered, "\n\n")
}

// formatClock renders whole seconds as H:MM:SS, rounding to the nearest
// second
func formatClock(seconds float64) string {
	total := int(math.Round(seconds))
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
