package timezone

import (
	"testing"
	"time"
)

func TestLocationFallsBackToDefault(t *testing.T) {
	loc := Location("not/a-zone")
	if loc.String() != DefaultTimezone {
		t.Fatalf("expected fallback to %s, got %s", DefaultTimezone, loc)
	}

	loc = Location("America/Sao_Paulo")
	if loc.String() != "America/Sao_Paulo" {
		t.Fatalf("expected America/Sao_Paulo, got %s", loc)
	}
}

func TestIsValid(t *testing.T) {
	if IsValid("") {
		t.Fatalf("empty timezone must be invalid")
	}
	if IsValid("not/a-zone") {
		t.Fatalf("garbage timezone must be invalid")
	}
	if !IsValid("UTC") {
		t.Fatalf("UTC must be valid")
	}
}

func TestStartOfDay(t *testing.T) {
	loc, _ := time.LoadLocation("America/Sao_Paulo")
	ts := time.Date(2026, 3, 10, 17, 42, 13, 500, loc)

	got := StartOfDay(ts)

	want := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("StartOfDay = %s, want %s", got, want)
	}
	if got.Location() != loc {
		t.Fatalf("StartOfDay changed location to %s", got.Location())
	}
}
