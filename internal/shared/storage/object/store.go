package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving and retrieving uploaded resumes.
// Objects are namespaced per user so an account can be purged in one call.
type ObjectStore interface {
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
	DeleteUser(ctx context.Context, userID string) (int, error)
}
