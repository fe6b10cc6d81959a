package userrepo

import "testing"

func TestPatch_IsEmpty(t *testing.T) {
	t.Parallel()

	if !(Patch{}).IsEmpty() {
		t.Fatalf("zero Patch should be empty")
	}
	email := "a@x.com"
	if (Patch{Email: &email}).IsEmpty() {
		t.Fatalf("Patch with Email should not be empty")
	}
}
