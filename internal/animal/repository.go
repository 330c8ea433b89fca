package animal

import "context"

// ListOptions contains filters for listing animals.
type ListOptions struct {
	// AdoptableOnly restricts results to animals that are available and
	// flagged for adoption.
	AdoptableOnly bool

	// Type restricts results to a single animal type when non-empty.
	Type Type

	// Limit caps the number of results. Zero means the repository default.
	Limit int
}

// Repository defines the interface for animal persistence.
type Repository interface {
	// Get retrieves an animal by ID.
	// Returns ErrAnimalNotFound if it does not exist.
	Get(ctx context.Context, id string) (*Animal, error)

	// List retrieves animals matching the given options.
	List(ctx context.Context, opts ListOptions) ([]*Animal, error)

	// Create creates a new animal.
	Create(ctx context.Context, a *Animal) error

	// Update updates an existing animal.
	Update(ctx context.Context, a *Animal) error

	// Delete deletes an animal by ID.
	Delete(ctx context.Context, id string) error
}

// ProfileRepository defines the interface for animal profile persistence.
// Profiles are keyed by animal ID; at most one profile exists per animal.
type ProfileRepository interface {
	// GetByAnimal retrieves the profile for an animal.
	// Returns ErrProfileNotFound if the animal has no profile.
	GetByAnimal(ctx context.Context, animalID string) (*Profile, error)

	// Upsert creates or replaces the profile for a profile's animal.
	Upsert(ctx context.Context, p *Profile) error

	// Delete deletes the profile for an animal.
	Delete(ctx context.Context, animalID string) error
}
