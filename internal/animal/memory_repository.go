package animal

import (
	"context"
	"sort"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu      sync.RWMutex
	animals map[string]*Animal
	order   []string
}

// NewInMemoryRepository creates a new in-memory animal repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		animals: make(map[string]*Animal),
	}
}

// Get retrieves an animal by ID.
func (r *InMemoryRepository) Get(_ context.Context, id string) (*Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.animals[id]
	if !ok {
		return nil, ErrAnimalNotFound
	}

	cpy := *a
	return &cpy, nil
}

// List retrieves animals matching the given options in insertion order.
func (r *InMemoryRepository) List(_ context.Context, opts ListOptions) ([]*Animal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var animals []*Animal
	for _, id := range r.order {
		a, ok := r.animals[id]
		if !ok {
			continue
		}
		if opts.AdoptableOnly && !a.Adoptable() {
			continue
		}
		if opts.Type != "" && a.Type != opts.Type {
			continue
		}
		cpy := *a
		animals = append(animals, &cpy)
	}

	if opts.Limit > 0 && len(animals) > opts.Limit {
		animals = animals[:opts.Limit]
	}

	return animals, nil
}

// Create creates a new animal.
func (r *InMemoryRepository) Create(_ context.Context, a *Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.animals[a.ID]; !ok {
		r.order = append(r.order, a.ID)
	}
	cpy := *a
	r.animals[a.ID] = &cpy
	return nil
}

// Update updates an existing animal.
func (r *InMemoryRepository) Update(_ context.Context, a *Animal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.animals[a.ID]; !ok {
		return ErrAnimalNotFound
	}

	cpy := *a
	r.animals[a.ID] = &cpy
	return nil
}

// Delete deletes an animal by ID.
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.animals, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)

// InMemoryProfileRepository is an in-memory implementation of
// ProfileRepository, keyed by animal ID.
type InMemoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewInMemoryProfileRepository creates a new in-memory profile repository.
func NewInMemoryProfileRepository() *InMemoryProfileRepository {
	return &InMemoryProfileRepository{
		profiles: make(map[string]*Profile),
	}
}

// GetByAnimal retrieves the profile for an animal.
func (r *InMemoryProfileRepository) GetByAnimal(_ context.Context, animalID string) (*Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.profiles[animalID]
	if !ok {
		return nil, ErrProfileNotFound
	}

	cpy := *p
	return &cpy, nil
}

// Upsert creates or replaces the profile for an animal.
func (r *InMemoryProfileRepository) Upsert(_ context.Context, p *Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cpy := *p
	r.profiles[p.AnimalID] = &cpy
	return nil
}

// Delete deletes the profile for an animal.
func (r *InMemoryProfileRepository) Delete(_ context.Context, animalID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.profiles, animalID)
	return nil
}

// AnimalIDs returns the IDs of animals that have a profile, sorted.
func (r *InMemoryProfileRepository) AnimalIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Ensure InMemoryProfileRepository implements ProfileRepository interface.
var _ ProfileRepository = (*InMemoryProfileRepository)(nil)
