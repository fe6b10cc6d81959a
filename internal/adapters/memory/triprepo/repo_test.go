package triprepo

import (
	"context"
	"testing"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
	"github.com/Overland-East-Bay/trip-gateway/internal/ports/out/triprepo"
)

func TestRepo_ListKeepsInsertionOrder(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	ids := []domain.TripID{"t1", "t2", "t3"}
	next := 0
	r.SetNewIDForTest(func() domain.TripID {
		id := ids[next]
		next++
		return id
	})

	for _, dest := range []string{"Moab", "Death Valley", "Mojave"} {
		if _, err := r.Insert(context.Background(), triprepo.Trip{Destination: dest}); err != nil {
			t.Fatalf("Insert(%q) err=%v", dest, err)
		}
	}
	if _, err := r.Delete(context.Background(), "t2"); err != nil {
		t.Fatalf("Delete err=%v", err)
	}

	got, err := r.List(context.Background())
	if err != nil {
		t.Fatalf("List() err=%v", err)
	}
	if len(got) != 2 || got[0].ID != "t1" || got[1].ID != "t3" {
		t.Fatalf("List()=%+v, want [t1 t3]", got)
	}
}

func TestRepo_InsertIgnoresCallerID(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	r.SetNewIDForTest(func() domain.TripID { return "assigned" })

	got, err := r.Insert(context.Background(), triprepo.Trip{ID: "caller", Destination: "Moab"})
	if err != nil {
		t.Fatalf("Insert() err=%v", err)
	}
	if got.ID != "assigned" {
		t.Fatalf("ID=%q, want assigned", got.ID)
	}
	if _, err := r.GetByID(context.Background(), "caller"); err != triprepo.ErrNotFound {
		t.Fatalf("GetByID(caller) err=%v, want %v", err, triprepo.ErrNotFound)
	}
}
