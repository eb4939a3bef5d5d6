package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/meeting-scribe/internal/logger"
)

type implLocal struct {
	logger logger.Logger
}

// NewLocal creates a Storage over the local filesystem. Containers are
// directory paths; keys are file names relative to them.
func NewLocal(log logger.Logger) Storage {
	return &implLocal{logger: log}
}

func (s *implLocal) Read(ctx context.Context, container, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(container, key))
	if err != nil {
		return nil, fmt.Errorf("read %s/%s: %w", container, key, err)
	}
	return data, nil
}

func (s *implLocal) Write(ctx context.Context, container, key string, data []byte) error {
	if err := os.MkdirAll(container, 0755); err != nil {
		return fmt.Errorf("create container %s: %w", container, err)
	}
	path := filepath.Join(container, key)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	s.logger.Debug(ctx, "Wrote artifact %s (%d bytes)", path, len(data))
	return nil
}

// Move relocates an artifact, falling back to copy-and-delete when the
// containers sit on different filesystems
func (s *implLocal) Move(ctx context.Context, srcContainer, srcKey, dstContainer, dstKey string) error {
	if err := os.MkdirAll(dstContainer, 0755); err != nil {
		return fmt.Errorf("create container %s: %w", dstContainer, err)
	}

	src := filepath.Join(srcContainer, srcKey)
	dst := filepath.Join(dstContainer, dstKey)

	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("move %s to %s: %w", src, dst, err)
	}
	return os.Remove(src)
}

func (s *implLocal) Remove(ctx context.Context, container, key string) error {
	path := filepath.Join(container, key)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
