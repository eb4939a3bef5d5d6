package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)

	// Look resolves a binary name to an absolute path, reporting an error
	// when the binary is not installed. Injected so callers can substitute
	// a fake resolver in tests instead of mutating PATH.
	Look(name string) (string, error)
}
