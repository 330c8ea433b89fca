package preferences

import (
	"context"
	"sync"
)

// InMemoryRepository is an in-memory implementation of Repository.
// This is intended for testing. Production should use PostgresRepository.
type InMemoryRepository struct {
	mu     sync.RWMutex
	byUser map[string]*Preferences
	order  []string
}

// NewInMemoryRepository creates a new in-memory preferences repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byUser: make(map[string]*Preferences),
	}
}

// GetByUser retrieves the preferences record for a user.
func (r *InMemoryRepository) GetByUser(_ context.Context, userID string) (*Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUser[userID]
	if !ok {
		return nil, ErrPreferencesNotFound
	}

	cpy := *p
	return &cpy, nil
}

// ListComplete retrieves all complete preference records in insertion order.
func (r *InMemoryRepository) ListComplete(_ context.Context) ([]*Preferences, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Preferences
	for _, userID := range r.order {
		p, ok := r.byUser[userID]
		if !ok || !p.IsComplete {
			continue
		}
		cpy := *p
		result = append(result, &cpy)
	}
	return result, nil
}

// Upsert creates or replaces the preferences record for its user.
func (r *InMemoryRepository) Upsert(_ context.Context, p *Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byUser[p.UserID]; !ok {
		r.order = append(r.order, p.UserID)
	}
	cpy := *p
	r.byUser[p.UserID] = &cpy
	return nil
}

// Delete deletes the preferences record for a user.
func (r *InMemoryRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUser, userID)
	for i, id := range r.order {
		if id == userID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// Ensure InMemoryRepository implements Repository interface.
var _ Repository = (*InMemoryRepository)(nil)
