package reservation

import (
	"testing"
)

func TestCountsTowardCapacity(t *testing.T) {
	counts := map[Status]bool{
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCancelled: false,
		StatusCompleted: false,
		StatusNoShow:    false,
		StatusRejected:  false,
	}

	for s, want := range counts {
		if got := CountsTowardCapacity(s); got != want {
			t.Fatalf("CountsTowardCapacity(%s) = %v, want %v", s, got, want)
		}
	}
}

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(true); got != StatusPending {
		t.Fatalf("with approval: got %s, want pending", got)
	}
	if got := InitialStatus(false); got != StatusConfirmed {
		t.Fatalf("without approval: got %s, want confirmed", got)
	}
}

func TestTransitionGuards(t *testing.T) {
	all := []Status{
		StatusPending, StatusConfirmed, StatusCancelled,
		StatusCompleted, StatusNoShow, StatusRejected,
	}

	guards := []struct {
		name    string
		guard   func(Status) error
		allowed map[Status]bool
	}{
		{"cancel", CanCancel, map[Status]bool{StatusPending: true, StatusConfirmed: true}},
		{"confirm", CanConfirm, map[Status]bool{StatusPending: true}},
		{"reject", CanReject, map[Status]bool{StatusPending: true}},
		{"complete", CanComplete, map[Status]bool{StatusConfirmed: true}},
		{"no_show", CanMarkNoShow, map[Status]bool{StatusPending: true, StatusConfirmed: true}},
		{"edit", CanEdit, map[Status]bool{StatusPending: true, StatusConfirmed: true}},
	}

	for _, g := range guards {
		for _, s := range all {
			err := g.guard(s)
			if g.allowed[s] && err != nil {
				t.Fatalf("%s from %s should be allowed, got %v", g.name, s, err)
			}
			if !g.allowed[s] && err == nil {
				t.Fatalf("%s from %s should be blocked", g.name, s)
			}
		}
	}
}
