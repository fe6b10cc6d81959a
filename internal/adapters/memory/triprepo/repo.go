package triprepo

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
	"github.com/Overland-East-Bay/trip-gateway/internal/ports/out/triprepo"
)

// Repo is an in-memory implementation of triprepo.Repository.
// It is safe for concurrent use.
type Repo struct {
	mu    sync.RWMutex
	byID  map[domain.TripID]triprepo.Trip
	order []domain.TripID

	newID func() domain.TripID
}

func NewRepo() *Repo {
	return &Repo{
		byID: make(map[domain.TripID]triprepo.Trip),
		newID: func() domain.TripID {
			return domain.TripID(uuid.NewString())
		},
	}
}

// SetNewIDForTest overrides ID assignment for deterministic tests.
func (r *Repo) SetNewIDForTest(fn func() domain.TripID) {
	if fn != nil {
		r.newID = fn
	}
}

func (r *Repo) Insert(ctx context.Context, t triprepo.Trip) (triprepo.Trip, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.newID()
	r.byID[t.ID] = t
	r.order = append(r.order, t.ID)
	return t, nil
}

func (r *Repo) Update(ctx context.Context, id domain.TripID, p triprepo.Patch) (triprepo.Trip, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.byID[id]
	if !ok {
		return triprepo.Trip{}, triprepo.ErrNotFound
	}
	if p.Destination != nil {
		t.Destination = *p.Destination
	}
	if p.StartDate != nil {
		t.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		t.EndDate = *p.EndDate
	}
	r.byID[id] = t
	return t, nil
}

func (r *Repo) Delete(ctx context.Context, id domain.TripID) (bool, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.TripID) (triprepo.Trip, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byID[id]
	if !ok {
		return triprepo.Trip{}, triprepo.ErrNotFound
	}
	return t, nil
}

func (r *Repo) List(ctx context.Context) ([]triprepo.Trip, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]triprepo.Trip, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
