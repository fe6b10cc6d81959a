package triprepo

import (
	"testing"

	"github.com/Overland-East-Bay/trip-gateway/internal/adapters/contracttest"
	mongo_testutil "github.com/Overland-East-Bay/trip-gateway/internal/adapters/mongo/testutil"
	triprepoport "github.com/Overland-East-Bay/trip-gateway/internal/ports/out/triprepo"
)

func TestContract_MongoTripRepo(t *testing.T) {
	contracttest.RunTripRepo(t, func(t *testing.T) (triprepoport.Repository, func()) {
		t.Helper()
		return NewRepo(mongo_testutil.OpenTripCollection(t)), nil
	})
}
