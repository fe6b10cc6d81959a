package userrepo

import (
	"testing"

	"github.com/Overland-East-Bay/trip-gateway/internal/adapters/contracttest"
	"github.com/Overland-East-Bay/trip-gateway/internal/adapters/postgres/testutil"
	userrepoport "github.com/Overland-East-Bay/trip-gateway/internal/ports/out/userrepo"
)

func TestContract_PostgresUserRepo(t *testing.T) {
	pool := testutil.OpenMigratedPool(t)

	contracttest.RunUserRepo(t, func(t *testing.T) (userrepoport.Repository, func()) {
		t.Helper()
		return NewRepo(pool), nil
	})
}
