package tripevents

import (
	"context"
	"time"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
)

const TypeTripCreated = "trip.created"

// Event is a trip lifecycle event.
type Event struct {
	ID         string
	Type       string
	OccurredAt time.Time
	Trip       domain.Trip
}

// Publisher delivers trip events at most once. Implementations do not retry.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	// Topic names the destination, for logging and side-effect reporting.
	Topic() string
}
