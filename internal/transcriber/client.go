package transcriber

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/meeting-scribe/internal/config"
	"github.com/nguyentantai21042004/meeting-scribe/internal/metrics"
)

type implClient struct {
	endpoint   string
	language   string
	task       string
	topP       float64
	httpClient *http.Client
	metrics    *metrics.Metrics
}

// NewClient creates a Client for the speech-recognition endpoint
func NewClient(cfg config.TranscriptionConfig, m *metrics.Metrics) Client {
	return &implClient{
		endpoint: cfg.Endpoint,
		language: cfg.Language,
		task:     cfg.Task,
		topP:     cfg.TopP,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		metrics: m,
	}
}

// recognizeRequest is the endpoint's invocation payload. Audio travels as
// a hex string, not base64.
type recognizeRequest struct {
	AudioInput string  `json:"audio_input"`
	Language   string  `json:"language"`
	Task       string  `json:"task"`
	TopP       float64 `json:"top_p"`
}

// Recognize submits one chunk and decodes the polymorphic response
func (c *implClient) Recognize(ctx context.Context, chunkData []byte) (Result, error) {
	payload, err := json.Marshal(recognizeRequest{
		AudioInput: hex.EncodeToString(chunkData),
		Language:   c.language,
		Task:       c.task,
		TopP:       c.topP,
	})
	if err != nil {
		return Result{}, fmt.Errorf("marshal recognize request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("build recognize request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	if c.metrics != nil {
		c.metrics.TranscriptionRequests.Inc()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.metrics != nil {
			c.metrics.TranscriptionFailures.Inc()
		}
		return Result{}, fmt.Errorf("invoke speech endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if c.metrics != nil {
			c.metrics.TranscriptionFailures.Inc()
		}
		return Result{}, fmt.Errorf("read endpoint response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if c.metrics != nil {
			c.metrics.TranscriptionFailures.Inc()
		}
		return Result{}, fmt.Errorf("speech endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if c.metrics != nil {
		c.metrics.TranscriptionDuration.Observe(time.Since(start).Seconds())
	}

	return decodeResponse(body), nil
}

// decodeResponse extracts recognized text from one of the endpoint's
// response shapes, tried in priority order:
//
//	{"text": "..."}          standard
//	{"text": ["...", ...]}   list form, joined with spaces
//	"..."                    bare string body
//
// Anything else is coerced to a string and tagged low confidence instead
// of failing the chunk.
func decodeResponse(body []byte) Result {
	decoders := []func([]byte) (string, bool){
		decodeTextString,
		decodeTextList,
		decodeBareString,
	}

	for _, decode := range decoders {
		if text, ok := decode(body); ok {
			return Result{Text: text}
		}
	}

	return Result{
		Text:          strings.TrimSpace(string(body)),
		LowConfidence: true,
	}
}

func decodeTextString(body []byte) (string, bool) {
	// Pointer field distinguishes a present-but-empty text, the legitimate
	// result for a silent chunk, from an absent key
	var v struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(body, &v); err != nil || v.Text == nil {
		return "", false
	}
	return *v.Text, true
}

func decodeTextList(body []byte) (string, bool) {
	var v struct {
		Text *[]string `json:"text"`
	}
	if err := json.Unmarshal(body, &v); err != nil || v.Text == nil {
		return "", false
	}
	return strings.Join(*v.Text, " "), true
}

func decodeBareString(body []byte) (string, bool) {
	var v string
	if err := json.Unmarshal(body, &v); err != nil {
		return "", false
	}
	return v, true
}
