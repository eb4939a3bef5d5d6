package transcript

// Item types
const (
	TypePronunciation = "pronunciation"
	TypePunctuation   = "punctuation"
)

// DefaultSpeaker is the synthetic label assigned when no real diarization
// service has attributed speakers
const DefaultSpeaker = "spk_0"

// Alternative carries one candidate rendering of an item
type Alternative struct {
	Content string `json:"content"`
}

// Item is a single transcript token: a pronunciation with timing or a
// timing-less punctuation symbol. Times are decimal-second strings to stay
// wire compatible with diarization engines that emit the same shape.
type Item struct {
	StartTime    string        `json:"start_time,omitempty"`
	EndTime      string        `json:"end_time,omitempty"`
	Alternatives []Alternative `json:"alternatives"`
	Type         string        `json:"type"`
}

// Content returns the item's first alternative
func (i Item) Content() string {
	if len(i.Alternatives) == 0 {
		return ""
	}
	return i.Alternatives[0].Content
}

// SegmentItem references one pronunciation item from a speaker segment
type SegmentItem struct {
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	SpeakerLabel string `json:"speaker_label"`
}

// Segment attributes a time window to a single speaker
type Segment struct {
	StartTime    string        `json:"start_time"`
	EndTime      string        `json:"end_time"`
	SpeakerLabel string        `json:"speaker_label"`
	Items        []SegmentItem `json:"items"`
}

// SpeakerLabels groups all speaker segments of a transcript
type SpeakerLabels struct {
	Speakers int       `json:"speakers"`
	Segments []Segment `json:"segments"`
}

// TranscriptText wraps the full concatenated transcript
type TranscriptText struct {
	Transcript string `json:"transcript"`
}

// Results is the payload portion of a transcript document
type Results struct {
	Transcripts   []TranscriptText `json:"transcripts"`
	Items         []Item           `json:"items"`
	SpeakerLabels SpeakerLabels    `json:"speaker_labels"`
}

// Document is the persisted transcript artifact. The shape is identical
// whether items and segments came from the synthetic assembler or from a
// real diarization service.
type Document struct {
	JobName   string  `json:"jobName"`
	AccountID string  `json:"accountId"`
	Results   Results `json:"results"`
	Status    string  `json:"status"`
}

// Text returns the full concatenated transcript text
func (d *Document) Text() string {
	if len(d.Results.Transcripts) == 0 {
		return ""
	}
	return d.Results.Transcripts[0].Transcript
}
