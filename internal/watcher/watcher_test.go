package watcher

import "testing"

func TestIsRecording(t *testing.T) {
	w := &implWatcher{}

	tests := []struct {
		path string
		want bool
	}{
		{"/inbox/meeting.wav", true},
		{"/inbox/meeting.MP3", true},
		{"/inbox/meeting.mp4", true},
		{"/inbox/call.ogg", true},
		{"/inbox/export.m4a", true},
		{"/inbox/notes.txt", false},
		{"/inbox/.hidden", false},
		{"/inbox/archive.zip", false},
	}

	for _, tt := range tests {
		if got := w.isRecording(tt.path); got != tt.want {
			t.Errorf("isRecording(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
