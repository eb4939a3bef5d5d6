package transcriber

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nguyentantai21042004/meeting-scribe/internal/config"
)

func TestDecodeResponse(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		wantText      string
		lowConfidence bool
	}{
		{
			name:     "text field string",
			body:     `{"text": "hello world"}`,
			wantText: "hello world",
		},
		{
			name:     "text field list joined with spaces",
			body:     `{"text": ["hello", "world"]}`,
			wantText: "hello world",
		},
		{
			name:     "bare JSON string body",
			body:     `"hello world"`,
			wantText: "hello world",
		},
		{
			name:          "unknown object shape coerced",
			body:          `{"transcript": "hello"}`,
			wantText:      `{"transcript": "hello"}`,
			lowConfidence: true,
		},
		{
			name:          "non-JSON body coerced and trimmed",
			body:          "  plain text\n",
			wantText:      "plain text",
			lowConfidence: true,
		},
		{
			name:     "empty text field means a silent chunk",
			body:     `{"text": ""}`,
			wantText: "",
		},
		{
			name:     "empty text list means a silent chunk",
			body:     `{"text": []}`,
			wantText: "",
		},
		{
			name:          "null text field falls through",
			body:          `{"text": null}`,
			wantText:      `{"text": null}`,
			lowConfidence: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decodeResponse([]byte(tt.body))
			if got.Text != tt.wantText {
				t.Errorf("text = %q, want %q", got.Text, tt.wantText)
			}
			if got.LowConfidence != tt.lowConfidence {
				t.Errorf("lowConfidence = %v, want %v", got.LowConfidence, tt.lowConfidence)
			}
		})
	}
}

func TestClientRecognize(t *testing.T) {
	chunk := []byte{0x01, 0x02, 0xAB, 0xFF}

	var gotReq recognizeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		body, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(body, &gotReq); err != nil {
			t.Errorf("unmarshal request: %v", err)
		}
		w.Write([]byte(`{"text": "recognized"}`))
	}))
	defer srv.Close()

	client := NewClient(config.TranscriptionConfig{
		Endpoint:       srv.URL,
		Language:       "english",
		Task:           "transcribe",
		TopP:           0.9,
		TimeoutSeconds: 5,
	}, nil)

	result, err := client.Recognize(context.Background(), chunk)
	if err != nil {
		t.Fatalf("Recognize: %v", err)
	}
	if result.Text != "recognized" {
		t.Errorf("text = %q, want %q", result.Text, "recognized")
	}
	if result.LowConfidence {
		t.Error("unexpected low confidence flag")
	}

	if gotReq.AudioInput != hex.EncodeToString(chunk) {
		t.Errorf("audio_input = %q, want hex of chunk", gotReq.AudioInput)
	}
	if gotReq.Language != "english" || gotReq.Task != "transcribe" {
		t.Errorf("request params = %q/%q", gotReq.Language, gotReq.Task)
	}
	if gotReq.TopP != 0.9 {
		t.Errorf("top_p = %v, want 0.9", gotReq.TopP)
	}
}

func TestClientRecognizeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(config.TranscriptionConfig{
		Endpoint:       srv.URL,
		TimeoutSeconds: 5,
	}, nil)

	if _, err := client.Recognize(context.Background(), []byte{0x00}); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
