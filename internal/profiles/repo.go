package profiles

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("profile not found")

// Repo persists profiles. Update applies fn to the stored profile (or a zero profile
// carrying only UserID when none exists) and writes the result atomically.
type Repo interface {
	Get(ctx context.Context, userID string) (Profile, error)
	Update(ctx context.Context, userID string, fn func(*Profile) error) (Profile, error)
	Delete(ctx context.Context, userID string) error
}
