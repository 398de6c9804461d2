package favorites

import "context"

// Repository persists the favorite ids as a single named entry.
type Repository interface {
	// Load returns the stored ids. A missing entry is an empty list, not an error.
	Load(ctx context.Context) ([]string, error)

	// Save atomically replaces the stored ids. On error the previous entry
	// must still be readable.
	Save(ctx context.Context, ids []string) error
}
