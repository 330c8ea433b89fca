package preferences

import "context"

// Repository defines the interface for preferences persistence.
type Repository interface {
	// GetByUser retrieves the preferences record for a user.
	// Returns ErrPreferencesNotFound if the user has none.
	GetByUser(ctx context.Context, userID string) (*Preferences, error)

	// ListComplete retrieves all complete preference records.
	// Used by the match-scan worker to fan out over adopters.
	ListComplete(ctx context.Context) ([]*Preferences, error)

	// Upsert creates or replaces the preferences record for its user.
	Upsert(ctx context.Context, p *Preferences) error

	// Delete deletes the preferences record for a user.
	Delete(ctx context.Context, userID string) error
}
