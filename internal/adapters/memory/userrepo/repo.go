package userrepo

import (
	"context"
	"strconv"
	"sync"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
	"github.com/Overland-East-Bay/trip-gateway/internal/ports/out/userrepo"
)

// Repo is an in-memory implementation of userrepo.Repository.
// IDs are assigned from a counter, mirroring a serial column.
// It is safe for concurrent use.
type Repo struct {
	mu sync.RWMutex

	nextID int64
	byID   map[domain.UserID]userrepo.User
	order  []domain.UserID
}

func NewRepo() *Repo {
	return &Repo{
		nextID: 1,
		byID:   make(map[domain.UserID]userrepo.User),
	}
}

func (r *Repo) Insert(ctx context.Context, u userrepo.User) (userrepo.User, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	u.ID = domain.UserID(strconv.FormatInt(r.nextID, 10))
	r.nextID++
	r.byID[u.ID] = u
	r.order = append(r.order, u.ID)
	return u, nil
}

func (r *Repo) Update(ctx context.Context, id domain.UserID, p userrepo.Patch) (userrepo.User, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[id]
	if !ok {
		return userrepo.User{}, userrepo.ErrNotFound
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Website != nil {
		u.Website = *p.Website
	}
	r.byID[id] = u
	return u, nil
}

func (r *Repo) Delete(ctx context.Context, id domain.UserID) (bool, error) {
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

func (r *Repo) GetByID(ctx context.Context, id domain.UserID) (userrepo.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.byID[id]
	if !ok {
		return userrepo.User{}, userrepo.ErrNotFound
	}
	return u, nil
}

func (r *Repo) List(ctx context.Context) ([]userrepo.User, error) {
	_ = ctx
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]userrepo.User, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}
