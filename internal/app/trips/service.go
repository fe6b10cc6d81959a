package trips

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/oapi-codegen/nullable"
	"go.uber.org/zap"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
	clockport "github.com/Overland-East-Bay/trip-gateway/internal/ports/out/clock"
	"github.com/Overland-East-Bay/trip-gateway/internal/ports/out/tripevents"
	"github.com/Overland-East-Bay/trip-gateway/internal/ports/out/triprepo"
)

type Service struct {
	trips  triprepo.Repository
	events tripevents.Publisher
	clk    clockport.Clock
	log    *zap.Logger

	newEventID func() string
}

func NewService(tripsRepo triprepo.Repository, events tripevents.Publisher, clk clockport.Clock, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		trips:      tripsRepo,
		events:     events,
		clk:        clk,
		log:        log.Named("trips"),
		newEventID: uuid.NewString,
	}
}

// SetNewEventIDForTest overrides event ID generation for deterministic tests.
// It should not be used in production code.
func (s *Service) SetNewEventIDForTest(fn func() string) {
	if fn != nil {
		s.newEventID = fn
	}
}

func (s *Service) ListTrips(ctx context.Context) ([]domain.Trip, error) {
	ts, err := s.trips.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Trip, 0, len(ts))
	for _, t := range ts {
		out = append(out, toDomain(t))
	}
	return out, nil
}

// GetTrip returns nil when the trip does not exist.
func (s *Service) GetTrip(ctx context.Context, id domain.TripID) (*domain.Trip, error) {
	t, err := s.trips.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	d := toDomain(t)
	return &d, nil
}

// CreateTrip inserts the trip and then publishes trip.created. A publish
// failure is reported as a side effect and does not fail the call.
func (s *Service) CreateTrip(ctx context.Context, in CreateTripInput) (MutationResult, error) {
	t, err := s.trips.Insert(ctx, triprepo.Trip{
		Destination: in.Destination,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
	})
	if err != nil {
		return MutationResult{}, err
	}
	d := toDomain(t)

	effect := domain.SideEffect{Kind: domain.SideEffectEventPublish, Key: s.events.Topic()}
	if err := s.events.Publish(ctx, tripevents.Event{
		ID:         s.newEventID(),
		Type:       tripevents.TypeTripCreated,
		OccurredAt: s.clk.Now(),
		Trip:       d,
	}); err != nil {
		effect.Err = err
		s.log.Warn("trip event publish failed",
			zap.String("topic", effect.Key),
			zap.String("trip_id", string(d.ID)),
			zap.Error(err),
		)
	}

	return MutationResult{
		Trip:        &d,
		SideEffects: []domain.SideEffect{effect},
	}, nil
}

// UpdateTrip writes only the specified fields and returns the post-update
// document. A missing trip yields a nil Trip.
func (s *Service) UpdateTrip(ctx context.Context, id domain.TripID, in UpdateTripInput) (MutationResult, error) {
	var patch triprepo.Patch
	details := map[string]any{}
	patch.Destination = patchValue(in.Destination, "destination", details)
	patch.StartDate = patchValue(in.StartDate, "startDate", details)
	patch.EndDate = patchValue(in.EndDate, "endDate", details)
	if len(details) > 0 {
		return MutationResult{}, &Error{
			Code:    "VALIDATION_ERROR",
			Message: "invalid trip patch",
			Details: details,
		}
	}

	t, err := s.trips.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, triprepo.ErrNotFound) {
			return MutationResult{}, nil
		}
		return MutationResult{}, err
	}
	d := toDomain(t)
	return MutationResult{Trip: &d}, nil
}

// DeleteTrip is idempotent: the confirmation is returned whether or not the document existed.
func (s *Service) DeleteTrip(ctx context.Context, id domain.TripID) (DeleteResult, error) {
	existed, err := s.trips.Delete(ctx, id)
	if err != nil {
		return DeleteResult{}, err
	}
	if !existed {
		s.log.Debug("delete of absent trip", zap.String("id", string(id)))
	}
	return DeleteResult{
		Message: fmt.Sprintf("Trip with ID %s deleted successfully", id),
		Existed: existed,
	}, nil
}

// --- helpers ---

func patchValue(n nullable.Nullable[string], field string, details map[string]any) *string {
	if !n.IsSpecified() {
		return nil
	}
	if n.IsNull() {
		details[field] = "must not be null"
		return nil
	}
	v := n.MustGet()
	return &v
}

func toDomain(t triprepo.Trip) domain.Trip {
	return domain.Trip{
		ID:          t.ID,
		Destination: t.Destination,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
	}
}
