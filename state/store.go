package state

import (
	"context"
	"sync"

	"github.com/mmdatafocus/estates_backend/config"
)

// Store owns the current AppState. Handlers dispatch actions after the
// models layer persists; reads get a point-in-time snapshot. The mutex only
// guards the swap, the snapshots themselves are never mutated in place.
type Store struct {
	mu    sync.RWMutex
	state AppState
}

func NewStore() *Store {
	return &Store{}
}

// Snapshot returns the current state. A snapshot is safe to read without
// locking because Reduce never mutates shared slices.
func (s *Store) Snapshot() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies one action through the reducer.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, action)
}

// Hydrate loads every collection for the org from the DB into the store.
// Called after startup; a failed collection degrades to empty with a
// logged error, matching the client-side fallback behavior.
func (s *Store) Hydrate(ctx context.Context, orgId string) error {
	logger := config.GetLogger()
	db := config.GetDB()

	var c Collections

	load := func(dest any, name string, preloads ...string) {
		q := db.WithContext(ctx).Where("org_id = ?", orgId)
		for _, p := range preloads {
			q = q.Preload(p)
		}
		if err := q.Find(dest).Error; err != nil {
			config.LogError(logger, "state", "Hydrate", "loading "+name, orgId, err)
		}
	}

	load(&c.Contacts, "contacts")
	load(&c.Projects, "projects")
	load(&c.Units, "units")
	load(&c.InstallmentPlans, "installment plans", "Discounts", "SelectedAmenities")
	load(&c.PlanAmenities, "plan amenities")
	load(&c.Payslips, "payslips", "Items", "Allocations")
	load(&c.Transactions, "transactions")
	load(&c.Users, "users")

	s.Dispatch(Action{Type: ActionSetCollections, Payload: c})
	return nil
}
