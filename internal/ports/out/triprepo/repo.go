package triprepo

import (
	"context"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
)

// Trip is the persistence shape used by the trip repository.
// It is not a GraphQL DTO.
type Trip struct {
	ID          domain.TripID
	Destination string
	StartDate   string
	EndDate     string
}

// Patch lists the mutable trip fields. A nil field leaves the stored value unchanged.
type Patch struct {
	Destination *string
	StartDate   *string
	EndDate     *string
}

func (p Patch) IsEmpty() bool {
	return p.Destination == nil && p.StartDate == nil && p.EndDate == nil
}

// Repository provides access to persisted trips.
type Repository interface {
	// Insert stores t and returns it with the store-assigned ID.
	Insert(ctx context.Context, t Trip) (Trip, error)
	// Update applies p and returns the document as it is after the update, or ErrNotFound.
	Update(ctx context.Context, id domain.TripID, p Patch) (Trip, error)
	// Delete removes the trip and reports whether it existed.
	Delete(ctx context.Context, id domain.TripID) (bool, error)

	GetByID(ctx context.Context, id domain.TripID) (Trip, error)
	List(ctx context.Context) ([]Trip, error)
}
