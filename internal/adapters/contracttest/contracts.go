package contracttest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Overland-East-Bay/trip-gateway/internal/domain"
	triprepoport "github.com/Overland-East-Bay/trip-gateway/internal/ports/out/triprepo"
	userrepoport "github.com/Overland-East-Bay/trip-gateway/internal/ports/out/userrepo"
)

type CleanupFunc = func()

type UserRepoFactory func(t *testing.T) (userrepoport.Repository, CleanupFunc)
type TripRepoFactory func(t *testing.T) (triprepoport.Repository, CleanupFunc)

func strPtr(s string) *string { return &s }

func RunUserRepo(t *testing.T, newRepo UserRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	in := userrepoport.User{
		Name:     "Alice",
		Username: "alice1",
		Email:    "a@x.com",
		Phone:    "555",
		Website:  "x.com",
	}
	created, err := repo.Insert(ctx, in)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("Insert returned empty id")
	}
	want := in
	want.ID = created.ID
	if diff := cmp.Diff(want, created); diff != "" {
		t.Fatalf("Insert mismatch (-want +got):\n%s", diff)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if diff := cmp.Diff(created, got); diff != "" {
		t.Fatalf("GetByID mismatch (-want +got):\n%s", diff)
	}

	// Partial update keeps unspecified columns.
	updated, err := repo.Update(ctx, created.ID, userrepoport.Patch{Email: strPtr("alice@x.com")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	want.Email = "alice@x.com"
	if diff := cmp.Diff(want, updated); diff != "" {
		t.Fatalf("Update mismatch (-want +got):\n%s", diff)
	}

	// An empty patch is a read of the current row.
	same, err := repo.Update(ctx, created.ID, userrepoport.Patch{})
	if err != nil {
		t.Fatalf("Update(empty): %v", err)
	}
	if diff := cmp.Diff(want, same); diff != "" {
		t.Fatalf("Update(empty) mismatch (-want +got):\n%s", diff)
	}

	second, err := repo.Insert(ctx, userrepoport.User{Name: "Bob", Username: "bob", Email: "b@x.com", Phone: "556", Website: "y.com"})
	if err != nil {
		t.Fatalf("Insert second: %v", err)
	}
	if second.ID == created.ID {
		t.Fatalf("ids not unique: %q", second.ID)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if !containsUser(all, created.ID) || !containsUser(all, second.ID) {
		t.Fatalf("List missing inserted users: %+v", all)
	}

	existed, err := repo.Delete(ctx, created.ID)
	if err != nil || !existed {
		t.Fatalf("Delete existed=%v err=%v, want true,nil", existed, err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, userrepoport.ErrNotFound) {
		t.Fatalf("GetByID after delete err=%v, want ErrNotFound", err)
	}
	existed, err = repo.Delete(ctx, created.ID)
	if err != nil || existed {
		t.Fatalf("Delete again existed=%v err=%v, want false,nil", existed, err)
	}

	if _, err := repo.Update(ctx, created.ID, userrepoport.Patch{Name: strPtr("ghost")}); !errors.Is(err, userrepoport.ErrNotFound) {
		t.Fatalf("Update missing err=%v, want ErrNotFound", err)
	}
	if _, err := repo.GetByID(ctx, domain.UserID("not-a-number")); !errors.Is(err, userrepoport.ErrNotFound) {
		t.Fatalf("GetByID malformed err=%v, want ErrNotFound", err)
	}
}

func containsUser(us []userrepoport.User, id domain.UserID) bool {
	for _, u := range us {
		if u.ID == id {
			return true
		}
	}
	return false
}

func RunTripRepo(t *testing.T, newRepo TripRepoFactory) {
	t.Helper()
	ctx := context.Background()

	repo, cleanup := newRepo(t)
	if cleanup != nil {
		t.Cleanup(cleanup)
	}

	in := triprepoport.Trip{Destination: "Moab", StartDate: "2026-04-01", EndDate: "2026-04-05"}
	created, err := repo.Insert(ctx, in)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("Insert returned empty id")
	}
	want := in
	want.ID = created.ID
	if diff := cmp.Diff(want, created); diff != "" {
		t.Fatalf("Insert mismatch (-want +got):\n%s", diff)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if diff := cmp.Diff(created, got); diff != "" {
		t.Fatalf("GetByID mismatch (-want +got):\n%s", diff)
	}

	updated, err := repo.Update(ctx, created.ID, triprepoport.Patch{Destination: strPtr("Ouray")})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	want.Destination = "Ouray"
	if diff := cmp.Diff(want, updated); diff != "" {
		t.Fatalf("Update mismatch (-want +got):\n%s", diff)
	}

	same, err := repo.Update(ctx, created.ID, triprepoport.Patch{})
	if err != nil {
		t.Fatalf("Update(empty): %v", err)
	}
	if diff := cmp.Diff(want, same); diff != "" {
		t.Fatalf("Update(empty) mismatch (-want +got):\n%s", diff)
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	found := false
	for _, tr := range all {
		if tr.ID == created.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("List missing %q: %+v", created.ID, all)
	}

	existed, err := repo.Delete(ctx, created.ID)
	if err != nil || !existed {
		t.Fatalf("Delete existed=%v err=%v, want true,nil", existed, err)
	}
	if _, err := repo.GetByID(ctx, created.ID); !errors.Is(err, triprepoport.ErrNotFound) {
		t.Fatalf("GetByID after delete err=%v, want ErrNotFound", err)
	}
	if _, err := repo.Update(ctx, created.ID, triprepoport.Patch{Destination: strPtr("x")}); !errors.Is(err, triprepoport.ErrNotFound) {
		t.Fatalf("Update missing err=%v, want ErrNotFound", err)
	}

	// Deleting an unknown or malformed id reports "did not exist", not an error.
	existed, err = repo.Delete(ctx, domain.TripID("t1"))
	if err != nil || existed {
		t.Fatalf("Delete(t1) existed=%v err=%v, want false,nil", existed, err)
	}
	if _, err := repo.GetByID(ctx, domain.TripID("t1")); !errors.Is(err, triprepoport.ErrNotFound) {
		t.Fatalf("GetByID(t1) err=%v, want ErrNotFound", err)
	}
}
