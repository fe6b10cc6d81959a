package httpapi

import (
	"context"

	"github.com/graph-gophers/graphql-go"
	"github.com/oapi-codegen/nullable"
	"go.uber.org/zap"

	"github.com/Overland-East-Bay/trip-gateway/internal/app/trips"
	"github.com/Overland-East-Bay/trip-gateway/internal/app/users"
	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
)

// Resolver is the root resolver for both Query and Mutation.
type Resolver struct {
	Users *users.Service
	Trips *trips.Service

	log *zap.Logger
}

func NewResolver(usersSvc *users.Service, tripsSvc *trips.Service, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{
		Users: usersSvc,
		Trips: tripsSvc,
		log:   log.Named("graphql"),
	}
}

// --- queries ---

func (r *Resolver) GetAllUsers(ctx context.Context) (*[]*userResolver, error) {
	us, err := r.Users.ListUsers(ctx)
	if err != nil {
		return nil, r.toFieldError(ctx, "getAllUsers", err)
	}
	out := make([]*userResolver, 0, len(us))
	for _, u := range us {
		out = append(out, &userResolver{u: u})
	}
	return &out, nil
}

func (r *Resolver) GetUser(ctx context.Context, args struct{ ID graphql.ID }) (*userResolver, error) {
	u, err := r.Users.GetUser(ctx, domain.UserID(args.ID))
	if err != nil {
		return nil, r.toFieldError(ctx, "getUser", err)
	}
	return newUserResolver(u), nil
}

func (r *Resolver) GetAllTrips(ctx context.Context) (*[]*tripResolver, error) {
	ts, err := r.Trips.ListTrips(ctx)
	if err != nil {
		return nil, r.toFieldError(ctx, "getAllTrips", err)
	}
	out := make([]*tripResolver, 0, len(ts))
	for _, t := range ts {
		out = append(out, &tripResolver{t: t})
	}
	return &out, nil
}

func (r *Resolver) GetTrip(ctx context.Context, args struct{ ID graphql.ID }) (*tripResolver, error) {
	t, err := r.Trips.GetTrip(ctx, domain.TripID(args.ID))
	if err != nil {
		return nil, r.toFieldError(ctx, "getTrip", err)
	}
	return newTripResolver(t), nil
}

// --- user mutations ---

type addUserArgs struct {
	Name     string
	Username string
	Email    string
	Phone    string
	Website  string
}

func (r *Resolver) AddUser(ctx context.Context, args addUserArgs) (*userResolver, error) {
	res, err := r.Users.CreateUser(ctx, users.CreateUserInput{
		Name:     args.Name,
		Username: args.Username,
		Email:    args.Email,
		Phone:    args.Phone,
		Website:  args.Website,
	})
	if err != nil {
		return nil, r.toFieldError(ctx, "addUser", err)
	}
	recordSideEffects(ctx, res.SideEffects)
	return newUserResolver(res.User), nil
}

type updateUserArgs struct {
	ID      graphql.ID
	Name    graphql.NullString
	Email   graphql.NullString
	Phone   graphql.NullString
	Website graphql.NullString
}

func (r *Resolver) UpdateUser(ctx context.Context, args updateUserArgs) (*userResolver, error) {
	res, err := r.Users.UpdateUser(ctx, domain.UserID(args.ID), users.UpdateUserInput{
		Name:    toNullable(args.Name),
		Email:   toNullable(args.Email),
		Phone:   toNullable(args.Phone),
		Website: toNullable(args.Website),
	})
	if err != nil {
		return nil, r.toFieldError(ctx, "updateUser", err)
	}
	recordSideEffects(ctx, res.SideEffects)
	return newUserResolver(res.User), nil
}

func (r *Resolver) DeleteUser(ctx context.Context, args struct{ ID graphql.ID }) (*string, error) {
	res, err := r.Users.DeleteUser(ctx, domain.UserID(args.ID))
	if err != nil {
		return nil, r.toFieldError(ctx, "deleteUser", err)
	}
	recordSideEffects(ctx, res.SideEffects)
	return &res.Message, nil
}

// --- trip mutations ---

type addTripArgs struct {
	Destination string
	StartDate   string
	EndDate     string
}

func (r *Resolver) AddTrip(ctx context.Context, args addTripArgs) (*tripResolver, error) {
	res, err := r.Trips.CreateTrip(ctx, trips.CreateTripInput{
		Destination: args.Destination,
		StartDate:   args.StartDate,
		EndDate:     args.EndDate,
	})
	if err != nil {
		return nil, r.toFieldError(ctx, "addTrip", err)
	}
	recordSideEffects(ctx, res.SideEffects)
	return newTripResolver(res.Trip), nil
}

type updateTripArgs struct {
	ID          graphql.ID
	Destination graphql.NullString
	StartDate   graphql.NullString
	EndDate     graphql.NullString
}

func (r *Resolver) UpdateTrip(ctx context.Context, args updateTripArgs) (*tripResolver, error) {
	res, err := r.Trips.UpdateTrip(ctx, domain.TripID(args.ID), trips.UpdateTripInput{
		Destination: toNullable(args.Destination),
		StartDate:   toNullable(args.StartDate),
		EndDate:     toNullable(args.EndDate),
	})
	if err != nil {
		return nil, r.toFieldError(ctx, "updateTrip", err)
	}
	recordSideEffects(ctx, res.SideEffects)
	return newTripResolver(res.Trip), nil
}

func (r *Resolver) DeleteTrip(ctx context.Context, args struct{ ID graphql.ID }) (*string, error) {
	res, err := r.Trips.DeleteTrip(ctx, domain.TripID(args.ID))
	if err != nil {
		return nil, r.toFieldError(ctx, "deleteTrip", err)
	}
	return &res.Message, nil
}

// toNullable keeps the distinction between an omitted argument and an
// explicit null.
func toNullable(s graphql.NullString) nullable.Nullable[string] {
	switch {
	case !s.Set:
		return nullable.Nullable[string]{}
	case s.Value == nil:
		return nullable.NewNullNullable[string]()
	default:
		return nullable.NewNullableWithValue(*s.Value)
	}
}

// --- object resolvers ---

type userResolver struct {
	u domain.User
}

func newUserResolver(u *domain.User) *userResolver {
	if u == nil {
		return nil
	}
	return &userResolver{u: *u}
}

func (r *userResolver) ID() graphql.ID   { return graphql.ID(r.u.ID) }
func (r *userResolver) Name() string     { return r.u.Name }
func (r *userResolver) Username() string { return r.u.Username }
func (r *userResolver) Email() string    { return r.u.Email }
func (r *userResolver) Phone() string    { return r.u.Phone }
func (r *userResolver) Website() string  { return r.u.Website }

type tripResolver struct {
	t domain.Trip
}

func newTripResolver(t *domain.Trip) *tripResolver {
	if t == nil {
		return nil
	}
	return &tripResolver{t: *t}
}

func (r *tripResolver) ID() graphql.ID      { return graphql.ID(r.t.ID) }
func (r *tripResolver) Destination() string { return r.t.Destination }
func (r *tripResolver) StartDate() string   { return r.t.StartDate }
func (r *tripResolver) EndDate() string     { return r.t.EndDate }
