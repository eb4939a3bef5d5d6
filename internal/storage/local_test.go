package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, msg string, args ...interface{}) {}
func (nopLogger) Info(ctx context.Context, msg string, args ...interface{})  {}
func (nopLogger) Warn(ctx context.Context, msg string, args ...interface{})  {}
func (nopLogger) Error(ctx context.Context, msg string, args ...interface{}) {}

func TestLocalWriteRead(t *testing.T) {
	dir := t.TempDir()
	s := NewLocal(nopLogger{})
	ctx := context.Background()

	container := filepath.Join(dir, "output")
	if err := s.Write(ctx, container, "Transcript-for-meeting.json", []byte(`{"jobName":"x"}`)); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := s.Read(ctx, container, "Transcript-for-meeting.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != `{"jobName":"x"}` {
		t.Errorf("content = %q", got)
	}
}

func TestLocalWriteCreatesContainer(t *testing.T) {
	dir := t.TempDir()
	s := NewLocal(nopLogger{})

	container := filepath.Join(dir, "does", "not", "exist")
	if err := s.Write(context.Background(), container, "a.txt", []byte("x")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(container, "a.txt")); err != nil {
		t.Errorf("artifact missing: %v", err)
	}
}

func TestLocalMove(t *testing.T) {
	dir := t.TempDir()
	s := NewLocal(nopLogger{})
	ctx := context.Background()

	inbox := filepath.Join(dir, "inbox")
	archived := filepath.Join(dir, "archived")
	if err := s.Write(ctx, inbox, "meeting.wav", []byte("audio")); err != nil {
		t.Fatalf("Write: %v", err)
	}

	if err := s.Move(ctx, inbox, "meeting.wav", archived, "meeting.wav"); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, err := os.Stat(filepath.Join(inbox, "meeting.wav")); !os.IsNotExist(err) {
		t.Error("source still present after move")
	}
	got, err := s.Read(ctx, archived, "meeting.wav")
	if err != nil || string(got) != "audio" {
		t.Errorf("moved content = %q, err = %v", got, err)
	}
}

func TestLocalReadMissing(t *testing.T) {
	s := NewLocal(nopLogger{})
	if _, err := s.Read(context.Background(), t.TempDir(), "nope.txt"); err == nil {
		t.Fatal("expected error for missing key")
	}
}

func TestLocalRemoveMissingIsNoop(t *testing.T) {
	s := NewLocal(nopLogger{})
	if err := s.Remove(context.Background(), t.TempDir(), "nope.txt"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
}
