package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/Shivanand-hulikatti/activity-roster/internal/model"
)

// MemoryRepository keeps activities in process memory. A single mutex
// serialises the read-check-write of Signup the way the Postgres store's row
// lock does.
type MemoryRepository struct {
	mu         sync.Mutex
	activities model.Collection
}

// NewMemoryRepository constructs a MemoryRepository holding a private copy
// of initial.
func NewMemoryRepository(initial model.Collection) *MemoryRepository {
	return &MemoryRepository{activities: clone(initial)}
}

// List returns a copy of every activity in insertion order.
func (r *MemoryRepository) List(_ context.Context) (model.Collection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return clone(r.activities), nil
}

// Signup adds email to the activity after checking duplicates and capacity.
func (r *MemoryRepository) Signup(_ context.Context, activity, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(activity)
	if i < 0 {
		return ErrNotFound
	}
	a := &r.activities[i].Activity
	if a.Has(email) {
		return ErrAlreadyRegistered
	}
	if a.IsFull() {
		return ErrActivityFull
	}
	a.Participants = append(a.Participants, email)
	return nil
}

// Unregister removes email from the activity.
func (r *MemoryRepository) Unregister(_ context.Context, activity, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(activity)
	if i < 0 {
		return ErrNotFound
	}
	a := &r.activities[i].Activity
	j := slices.Index(a.Participants, email)
	if j < 0 {
		return ErrNotRegistered
	}
	a.Participants = slices.Delete(a.Participants, j, j+1)
	return nil
}

func (r *MemoryRepository) indexOf(name string) int {
	return slices.IndexFunc(r.activities, func(e model.Entry) bool { return e.Name == name })
}

func clone(c model.Collection) model.Collection {
	out := make(model.Collection, len(c))
	for i, e := range c {
		out[i] = e
		out[i].Participants = slices.Clone(e.Participants)
	}
	return out
}
