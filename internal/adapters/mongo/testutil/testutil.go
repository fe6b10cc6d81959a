package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	mongoadapter "github.com/Overland-East-Bay/trip-gateway/internal/adapters/mongo"
)

// OpenTripCollection connects to TEST_MONGO_URI and returns a "trips"
// collection in a throwaway database that is dropped on cleanup. The test is
// skipped when the variable is unset.
func OpenTripCollection(t *testing.T) *mongo.Collection {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set; skipping mongo test")
	}
	ctx := context.Background()
	client, err := mongoadapter.Connect(ctx, uri)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	db := client.Database("trips_test_" + uuid.NewString()[:8])
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db.Collection("trips")
}
