package logging

import "testing"

func TestNew(t *testing.T) {
	t.Parallel()

	l, err := New("debug", "console")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !l.Core().Enabled(-1) {
		t.Fatalf("debug level not enabled")
	}

	l, err = New("warn", "json")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if l.Core().Enabled(0) {
		t.Fatalf("info enabled at warn level")
	}

	if _, err := New("loud", "json"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
