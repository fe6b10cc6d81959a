package userrepo

import (
	"context"
	"testing"

	"github.com/Overland-East-Bay/trip-gateway/internal/ports/out/userrepo"
)

func TestRepo_InsertAssignsSequentialIDs(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	a, err := r.Insert(context.Background(), userrepo.User{ID: "ignored", Name: "A", Username: "a"})
	if err != nil {
		t.Fatalf("Insert(a) err=%v", err)
	}
	b, err := r.Insert(context.Background(), userrepo.User{Name: "B", Username: "b"})
	if err != nil {
		t.Fatalf("Insert(b) err=%v", err)
	}
	if a.ID != "1" || b.ID != "2" {
		t.Fatalf("ids=%q,%q, want 1,2", a.ID, b.ID)
	}
}

func TestRepo_DeletedIDsAreNotReused(t *testing.T) {
	t.Parallel()

	r := NewRepo()
	a, _ := r.Insert(context.Background(), userrepo.User{Name: "A"})
	if _, err := r.Delete(context.Background(), a.ID); err != nil {
		t.Fatalf("Delete err=%v", err)
	}
	b, _ := r.Insert(context.Background(), userrepo.User{Name: "B"})
	if b.ID == a.ID {
		t.Fatalf("id %q reused after delete", a.ID)
	}
}
