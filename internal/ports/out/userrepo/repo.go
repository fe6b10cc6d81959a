package userrepo

import (
	"context"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
)

// User is the persistence shape used by the user repository.
// It is not a GraphQL DTO.
type User struct {
	ID       domain.UserID
	Name     string
	Username string
	Email    string
	Phone    string
	Website  string
}

// Patch lists the mutable user columns. A nil field leaves the stored value unchanged.
// Username is not patchable.
type Patch struct {
	Name    *string
	Email   *string
	Phone   *string
	Website *string
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Website == nil
}

// Repository provides access to persisted users.
//
// Result ordering expectations:
// - List returns users in store order (ascending id for the relational store).
type Repository interface {
	// Insert stores u and returns the stored row. The store assigns the ID; u.ID is ignored.
	Insert(ctx context.Context, u User) (User, error)
	// Update applies p to the user and returns the post-update row, or ErrNotFound.
	Update(ctx context.Context, id domain.UserID, p Patch) (User, error)
	// Delete removes the user. It reports whether a row existed; a missing row is not an error.
	Delete(ctx context.Context, id domain.UserID) (bool, error)

	GetByID(ctx context.Context, id domain.UserID) (User, error)
	List(ctx context.Context) ([]User, error)
}
