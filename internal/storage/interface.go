package storage

import "context"

// Storage persists pipeline artifacts addressed by a container and a key.
// Containers map to the configured directories (inbox, output, archived).
type Storage interface {
	Read(ctx context.Context, container, key string) ([]byte, error)
	Write(ctx context.Context, container, key string, data []byte) error
	Move(ctx context.Context, srcContainer, srcKey, dstContainer, dstKey string) error
	Remove(ctx context.Context, container, key string) error
}
