package triprepo

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
	"github.com/Overland-East-Bay/trip-gateway/internal/ports/out/triprepo"
)

// Repo is a MongoDB implementation of triprepo.Repository over one fixed collection.
type Repo struct {
	coll *mongo.Collection
}

func NewRepo(coll *mongo.Collection) *Repo {
	return &Repo{coll: coll}
}

type tripDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Destination string             `bson:"destination"`
	StartDate   string             `bson:"startDate"`
	EndDate     string             `bson:"endDate"`
}

func (d tripDocument) toPort() triprepo.Trip {
	return triprepo.Trip{
		ID:          domain.TripID(d.ID.Hex()),
		Destination: d.Destination,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
	}
}

func (r *Repo) Insert(ctx context.Context, t triprepo.Trip) (triprepo.Trip, error) {
	if r.coll == nil {
		return triprepo.Trip{}, errors.New("nil mongo collection")
	}
	doc := tripDocument{
		Destination: t.Destination,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return triprepo.Trip{}, pkgerrors.Wrap(err, "insert trip")
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return triprepo.Trip{}, pkgerrors.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	doc.ID = oid
	return doc.toPort(), nil
}

// Update sets only the supplied fields and returns the post-image atomically.
func (r *Repo) Update(ctx context.Context, id domain.TripID, p triprepo.Patch) (triprepo.Trip, error) {
	if r.coll == nil {
		return triprepo.Trip{}, errors.New("nil mongo collection")
	}
	oid, ok := parseID(id)
	if !ok {
		return triprepo.Trip{}, triprepo.ErrNotFound
	}
	if p.IsEmpty() {
		// $set with an empty document is rejected by the server.
		return r.GetByID(ctx, id)
	}

	set := bson.D{}
	if p.Destination != nil {
		set = append(set, bson.E{Key: "destination", Value: *p.Destination})
	}
	if p.StartDate != nil {
		set = append(set, bson.E{Key: "startDate", Value: *p.StartDate})
	}
	if p.EndDate != nil {
		set = append(set, bson.E{Key: "endDate", Value: *p.EndDate})
	}

	var doc tripDocument
	err := r.coll.FindOneAndUpdate(
		ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$set", Value: set}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return triprepo.Trip{}, triprepo.ErrNotFound
		}
		return triprepo.Trip{}, pkgerrors.Wrapf(err, "update trip %s", id)
	}
	return doc.toPort(), nil
}

func (r *Repo) Delete(ctx context.Context, id domain.TripID) (bool, error) {
	if r.coll == nil {
		return false, errors.New("nil mongo collection")
	}
	oid, ok := parseID(id)
	if !ok {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return false, pkgerrors.Wrapf(err, "delete trip %s", id)
	}
	return res.DeletedCount > 0, nil
}

func (r *Repo) GetByID(ctx context.Context, id domain.TripID) (triprepo.Trip, error) {
	if r.coll == nil {
		return triprepo.Trip{}, errors.New("nil mongo collection")
	}
	oid, ok := parseID(id)
	if !ok {
		return triprepo.Trip{}, triprepo.ErrNotFound
	}
	var doc tripDocument
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return triprepo.Trip{}, triprepo.ErrNotFound
		}
		return triprepo.Trip{}, pkgerrors.Wrapf(err, "get trip %s", id)
	}
	return doc.toPort(), nil
}

func (r *Repo) List(ctx context.Context) ([]triprepo.Trip, error) {
	if r.coll == nil {
		return nil, errors.New("nil mongo collection")
	}
	cur, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list trips")
	}
	defer func() { _ = cur.Close(ctx) }()

	out := make([]triprepo.Trip, 0)
	for cur.Next(ctx) {
		var doc tripDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, pkgerrors.Wrap(err, "decode trip")
		}
		out = append(out, doc.toPort())
	}
	if err := cur.Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "list trips")
	}
	return out, nil
}

// parseID accepts only hex ObjectIDs; any other id cannot match a document.
func parseID(id domain.TripID) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(string(id))
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
