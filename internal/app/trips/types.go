package trips

import (
	"github.com/oapi-codegen/nullable"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
)

type CreateTripInput struct {
	Destination string
	StartDate   string
	EndDate     string
}

// UpdateTripInput is a partial patch; only specified fields are written.
type UpdateTripInput struct {
	Destination nullable.Nullable[string]
	StartDate   nullable.Nullable[string]
	EndDate     nullable.Nullable[string]
}

// MutationResult is the primary outcome of a trip write plus any best-effort
// side effects. Trip is nil when the target did not exist.
type MutationResult struct {
	Trip        *domain.Trip
	SideEffects []domain.SideEffect
}

// DeleteResult is returned by DeleteTrip. Existed reports whether a document was removed.
type DeleteResult struct {
	Message string
	Existed bool
}
